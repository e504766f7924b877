package server

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/config"
)

// MockVaultClient serves secrets from a map guarded for concurrent polls.
type MockVaultClient struct {
	mu      sync.Mutex
	secrets map[string]*config.VaultSecret
	err     error
}

func (m *MockVaultClient) GetSecretV2(path string) (*config.VaultSecret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.secrets[path], nil
}

func (m *MockVaultClient) set(path string, version int64, keys string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secrets[path] = &config.VaultSecret{Data: map[string]any{"keys": keys}, Version: version}
}

func TestVaultWatcherCheckForUpdates(t *testing.T) {
	client := &MockVaultClient{secrets: map[string]*config.VaultSecret{}}
	client.set("secret/data/keys", 2, "alpha, beta")
	vw := NewVaultWatcher(client, "secret/data/keys", time.Minute, func([]string) {}, nil)

	keys, changed, err := vw.checkForUpdates()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"alpha", "beta"}, keys)

	_, changed, err = vw.checkForUpdates()
	require.NoError(t, err)
	assert.False(t, changed, "same version")

	client.err = fmt.Errorf("sealed")
	_, _, err = vw.checkForUpdates()
	assert.ErrorContains(t, err, "sealed")
	assert.Equal(t, "sealed", vw.Status()["last_error"])
	assert.Equal(t, int64(2), vw.Status()["last_version"])
}

func TestVaultWatcherRotatesServerKeys(t *testing.T) {
	client := &MockVaultClient{secrets: map[string]*config.VaultSecret{}}
	client.set("secret/data/keys", 1, "first")

	s := newTestServer(t, []string{"bootstrap"})
	rotated := make(chan struct{}, 4)
	vw := NewVaultWatcher(client, "secret/data/keys", 10*time.Millisecond, func(keys []string) {
		s.SetAPIKeys(keys)
		rotated <- struct{}{}
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go vw.Run(ctx)

	waitFor(t, rotated)
	assert.True(t, s.hasAPIKey("first"))
	assert.False(t, s.hasAPIKey("bootstrap"))

	client.set("secret/data/keys", 2, "second,third")
	waitFor(t, rotated)
	assert.True(t, s.hasAPIKey("third"))
	assert.False(t, s.hasAPIKey("first"))
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for key rotation")
	}
}
