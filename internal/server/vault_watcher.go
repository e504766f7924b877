package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumescore/internal/config"
	"resumescore/internal/errors"
)

// SecretReader is the part of the Vault client the watcher needs.
type SecretReader interface {
	GetSecretV2(path string) (*config.VaultSecret, error)
}

// KeysCallback receives the API keys from each new secret version.
type KeysCallback func(keys []string)

// VaultWatcher polls a KV v2 secret and reports new API key sets when its
// version increases.
type VaultWatcher struct {
	mu sync.RWMutex

	client       SecretReader
	secretPath   string
	pollInterval time.Duration
	onKeys       KeysCallback
	logger       *errors.Logger

	lastVersion int64
	lastError   string
	running     bool
}

func NewVaultWatcher(client SecretReader, secretPath string, pollInterval time.Duration, onKeys KeysCallback, logger *errors.Logger) *VaultWatcher {
	if logger == nil {
		logger = errors.Discard()
	}
	return &VaultWatcher{
		client:       client,
		secretPath:   secretPath,
		pollInterval: pollInterval,
		onKeys:       onKeys,
		logger:       logger,
	}
}

// Run polls until ctx is cancelled. The first poll happens immediately so
// the recorded version matches what startup already applied.
func (vw *VaultWatcher) Run(ctx context.Context) {
	vw.setRunning(true)
	defer vw.setRunning(false)
	vw.logger.Info("Vault watcher started", "secret_path", vw.secretPath, "poll_interval", vw.pollInterval)

	ticker := time.NewTicker(vw.pollInterval)
	defer ticker.Stop()

	vw.poll()
	for {
		select {
		case <-ticker.C:
			vw.poll()
		case <-ctx.Done():
			vw.logger.Info("Vault watcher stopped")
			return
		}
	}
}

func (vw *VaultWatcher) poll() {
	keys, changed, err := vw.checkForUpdates()
	if err != nil {
		vw.logger.LogError(err, "Failed to check Vault for updates")
		return
	}
	if !changed {
		return
	}
	if len(keys) == 0 {
		vw.logger.Warn("Vault secret has no API keys, keeping current keys", "secret_path", vw.secretPath)
		return
	}
	vw.logger.Info("Vault secret changed, rotating API keys", "keys", len(keys))
	vw.onKeys(keys)
}

// checkForUpdates reads the secret and reports its keys when the version
// has moved past the last one seen.
func (vw *VaultWatcher) checkForUpdates() ([]string, bool, error) {
	secret, err := vw.client.GetSecretV2(vw.secretPath)

	vw.mu.Lock()
	defer vw.mu.Unlock()
	if err != nil {
		vw.lastError = err.Error()
		return nil, false, fmt.Errorf("failed to read secret: %w", err)
	}
	vw.lastError = ""
	if secret == nil || secret.Version <= vw.lastVersion {
		return nil, false, nil
	}
	vw.lastVersion = secret.Version
	return config.APIKeysFromSecret(secret), true, nil
}

func (vw *VaultWatcher) setRunning(running bool) {
	vw.mu.Lock()
	defer vw.mu.Unlock()
	vw.running = running
}

// Status returns the current status of the VaultWatcher for health reporting
func (vw *VaultWatcher) Status() map[string]any {
	vw.mu.RLock()
	defer vw.mu.RUnlock()
	status := map[string]any{
		"running":       vw.running,
		"poll_interval": vw.pollInterval.String(),
		"secret_path":   vw.secretPath,
		"last_version":  vw.lastVersion,
	}
	if vw.lastError != "" {
		status["last_error"] = vw.lastError
	}
	return status
}
