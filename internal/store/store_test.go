package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

func newMiniRedis(t *testing.T) (*mr.Miniredis, config.StoreConfig) {
	t.Helper()
	m, err := mr.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	cfg := config.Default().Store
	cfg.Backend = "redis"
	cfg.RedisAddr = m.Addr()
	return m, cfg
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	file, err := NewFile(filepath.Join(t.TempDir(), "resumes"))
	require.NoError(t, err)

	_, cfg := newMiniRedis(t)
	rds, err := NewRedis(context.Background(), cfg, errors.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rds.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"redis":  rds,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(ctx, "alex")
			assert.ErrorIs(t, err, ErrNotLoaded)

			require.NoError(t, s.Save(ctx, "alex", resume.Sample()))
			got, err := s.Load(ctx, "alex")
			require.NoError(t, err)
			assert.Equal(t, resume.Sample(), got)

			edited := resume.Sample()
			edited.Summary = "Updated summary."
			require.NoError(t, s.Save(ctx, "alex", edited))
			got, err = s.Load(ctx, "alex")
			require.NoError(t, err)
			assert.Equal(t, "Updated summary.", got.Summary)

			require.NoError(t, s.Delete(ctx, "alex"))
			assert.ErrorIs(t, s.Delete(ctx, "alex"), ErrNotFound)
			_, err = s.Load(ctx, "alex")
			assert.ErrorIs(t, err, ErrNotLoaded)

			err = s.Save(ctx, "../escape", resume.Sample())
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
			err = s.Save(ctx, "alex", nil)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestMemoryIsolatesCallers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	doc := resume.Sample()
	require.NoError(t, m.Save(ctx, "k", doc))

	doc.Skills.Technical[0] = "COBOL"
	got, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.NotEqual(t, "COBOL", got.Skills.Technical[0])

	got.Summary = ""
	again, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.NotEmpty(t, again.Summary)
	assert.Equal(t, 1, m.Stats()["documents"])
}

func TestFileMigratesLegacyDocuments(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"personalInfo":{"name":"Sam Lee"},"skills":"Go, SQL"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sam.json"), []byte(legacy), 0600))

	f, err := NewFile(dir)
	require.NoError(t, err)
	doc, err := f.Load(context.Background(), "sam")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, doc.Skills.Technical)
	assert.Equal(t, resume.SchemaVersion, doc.SchemaVersion)
}

func TestRedisUsesKeyPrefix(t *testing.T) {
	m, cfg := newMiniRedis(t)
	cfg.KeyPrefix = "test:resume:"
	r, err := NewRedis(context.Background(), cfg, nil)
	require.NoError(t, err)

	require.NoError(t, r.Save(context.Background(), "alex", resume.Sample()))
	assert.True(t, m.Exists("test:resume:alex"))
	assert.True(t, r.IsHealthy())
}

func TestRedisBreakerOpens(t *testing.T) {
	m, cfg := newMiniRedis(t)
	cfg.Breaker = config.BreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         0,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	r := NewRedisWithClient(client, cfg, errors.Discard())
	ctx := context.Background()

	// Misses do not count as failures.
	for range 5 {
		_, err := r.Load(ctx, "missing")
		require.ErrorIs(t, err, ErrNotLoaded)
	}
	assert.True(t, r.IsHealthy())

	m.Close()
	for range 3 {
		_, err := r.Load(ctx, "alex")
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeStorage))
	}

	_, err := r.Load(ctx, "alex")
	assert.True(t, stderrors.Is(err, gobreaker.ErrOpenState))
	assert.False(t, r.IsHealthy())

	breaker := r.Stats()["breaker"].(map[string]any)
	assert.Equal(t, "open", breaker["state"])
}

func TestNewFactory(t *testing.T) {
	ctx := context.Background()

	s, err := New(ctx, config.StoreConfig{Backend: "memory"}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "one", resume.Sample()))
	stats := s.(StatsReporter).Stats()
	assert.Equal(t, "memory", stats["backend"])
	assert.Equal(t, 1, stats["documents"])

	_, err = New(ctx, config.StoreConfig{Backend: "file"}, nil, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))

	_, err = New(ctx, config.StoreConfig{Backend: "etcd"}, nil, nil)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
