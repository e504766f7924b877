package watch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/common"
	"resumescore/internal/config"
	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/resume"
	"resumescore/internal/store"
)

func writeResume(t *testing.T, path string, doc *resume.Document) {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0600))
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.json")
	writeResume(t, path, resume.Empty())

	changed := make(chan struct{}, 4)
	w := NewWatcher(path, 20*time.Millisecond, func(context.Context) { changed <- struct{}{} }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	writeResume(t, path, resume.Sample())

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope", "resume.json"), 0, func(context.Context) {}, nil)
	err := w.Run(context.Background())
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}

func TestRescore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "resume.json")
	writeResume(t, path, resume.Sample())

	mem := store.NewMemory()
	tracker := store.NewTracker(mem, store.DefaultKey, nil, nil)
	svc := engine.NewService(config.Default().App, nil, nil)
	r := NewRescorer(svc, common.NewFileProcessor(nil, 0), tracker, "detailed", nil)

	res, err := r.Rescore(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 75, res.Score.Score)
	assert.True(t, res.Validation.IsValid)
	assert.False(t, res.Saved, "tracker has not loaded yet")

	_, err = tracker.Load(ctx)
	require.NoError(t, err)
	res, err = r.Rescore(ctx, path)
	require.NoError(t, err)
	assert.True(t, res.Saved)

	stored, err := mem.Load(ctx, store.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "Alex Johnson", stored.PersonalInfo.Name)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
	_, err = r.Rescore(ctx, path)
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}
