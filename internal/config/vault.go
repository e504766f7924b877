package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"

	"resumescore/internal/errors"
)

// VaultConfig holds Vault connection configuration
type VaultConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Address   string `mapstructure:"address" validate:"omitempty,url"`
	Token     string `mapstructure:"token"`
	TokenFile string `mapstructure:"token_file"`
	Namespace string `mapstructure:"namespace"`

	// PollInterval makes serve re-read the API key secret periodically.
	// Zero disables polling.
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gte=0"`

	// Secret paths
	Secrets VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets defines where to find secrets in Vault
type VaultSecrets struct {
	// APIKeys points at a KV v2 secret whose "keys" field holds a
	// comma-separated list, e.g. "key1,key2,key3".
	APIKeys string `mapstructure:"api_keys"`
	// RedisPassword points at a KV v2 secret whose "password" field is the
	// password for the Redis store backend.
	RedisPassword string `mapstructure:"redis_password"`
}

// VaultClient wraps the Vault API client
type VaultClient struct {
	client *api.Client
	logger *errors.Logger
}

// VaultSecret represents a secret read from Vault's KVv2 engine.
type VaultSecret struct {
	Data    map[string]any
	Version int64
}

// NewVaultClient connects to Vault and checks its health. It returns nil
// when the integration is disabled.
func NewVaultClient(cfg VaultConfig, logger *errors.Logger) (*VaultClient, error) {
	if logger == nil {
		logger = errors.Discard()
	}
	if !cfg.Enabled {
		logger.Debug("Vault integration disabled")
		return nil, nil
	}

	apiCfg := api.DefaultConfig()
	if cfg.Address != "" {
		apiCfg.Address = cfg.Address
	}
	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig, "failed to create vault client", err)
	}
	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	token, err := resolveVaultToken(cfg)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)
	logger.Debug("Vault token configured", "token_prefix", token[:min(len(token), 4)]+"...")

	health, err := client.Sys().Health()
	if err != nil {
		return nil, errors.NewNetworkError(errors.ErrCodeNetworkTimeout, "failed to connect to vault", err).
			WithContext("address", apiCfg.Address)
	}
	logger.Info("Connected to Vault",
		"address", apiCfg.Address,
		"version", health.Version,
		"sealed", health.Sealed)

	return &VaultClient{client: client, logger: logger}, nil
}

// resolveVaultToken prefers the inline token and falls back to token_file.
func resolveVaultToken(cfg VaultConfig) (string, error) {
	token := cfg.Token
	if token == "" && cfg.TokenFile != "" {
		raw, err := os.ReadFile(cfg.TokenFile)
		if err != nil {
			return "", errors.NewConfigError(errors.ErrCodeInvalidConfig, "failed to read vault token file", err).
				WithContext("file", cfg.TokenFile)
		}
		token = strings.TrimSpace(string(raw))
	}
	if token == "" {
		return "", errors.NewConfigError(errors.ErrCodeInvalidConfig, "vault token is required when vault is enabled", nil)
	}
	return token, nil
}

// GetSecretV2 retrieves a secret from a Vault KVv2 store.
func (vc *VaultClient) GetSecretV2(path string) (*VaultSecret, error) {
	if vc == nil {
		return nil, fmt.Errorf("vault client not initialized")
	}
	vc.logger.Debug("Reading secret from Vault", "path", path)

	secret, err := vc.client.Logical().Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret from %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("secret not found at path: %s", path)
	}
	return decodeKVv2(secret, path)
}

// decodeKVv2 unpacks the data and metadata.version fields of a KVv2 read.
func decodeKVv2(secret *api.Secret, path string) (*VaultSecret, error) {
	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'data' field)", path)
	}
	metadata, ok := secret.Data["metadata"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("secret at %s is not in KVv2 format (missing 'metadata' field)", path)
	}
	raw, ok := metadata["version"]
	if !ok {
		return nil, fmt.Errorf("secret metadata at %s is missing 'version' field", path)
	}
	version, err := parseVersionValue(raw, path)
	if err != nil {
		return nil, err
	}
	return &VaultSecret{Data: data, Version: version}, nil
}

// parseVersionValue accepts the numeric encodings Vault's JSON decoding
// can produce for metadata.version.
func parseVersionValue(raw any, path string) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		version, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("could not parse secret version at %s: %w", path, err)
		}
		return version, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		version, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse secret version at %s: %w", path, err)
		}
		return version, nil
	default:
		return 0, fmt.Errorf("unexpected type for version at %s: %T", path, raw)
	}
}

// GetStringSecret retrieves a string value from a Vault secret
func (vc *VaultClient) GetStringSecret(path, key string) (string, error) {
	secret, err := vc.GetSecretV2(path)
	if err != nil {
		return "", err
	}
	return stringField(secret, path, key)
}

func stringField(secret *VaultSecret, path, key string) (string, error) {
	value, ok := secret.Data[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("value for key '%s' is not a string in secret %s", key, path)
	}
	return s, nil
}

// APIKeysFromSecret returns the API keys held in secret's "keys" field.
func APIKeysFromSecret(secret *VaultSecret) []string {
	if secret == nil {
		return nil
	}
	raw, _ := secret.Data["keys"].(string)
	return splitKeys(raw)
}

func splitKeys(value string) []string {
	result := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// ApplyVaultSecrets loads the configured secrets from Vault into cfg. It
// is a no-op when Vault is disabled.
func ApplyVaultSecrets(cfg *Config, logger *errors.Logger) error {
	if !cfg.Vault.Enabled {
		return nil
	}
	client, err := NewVaultClient(cfg.Vault, logger)
	if err != nil {
		return err
	}
	return applySecrets(client, cfg)
}

// secretSource is the subset of VaultClient used to apply secrets.
type secretSource interface {
	GetStringSecret(path, key string) (string, error)
}

func applySecrets(src secretSource, cfg *Config) error {
	paths := cfg.Vault.Secrets

	if paths.APIKeys != "" {
		raw, err := src.GetStringSecret(paths.APIKeys, "keys")
		if err != nil {
			return fmt.Errorf("failed to load API keys from vault: %w", err)
		}
		if keys := splitKeys(raw); len(keys) > 0 {
			cfg.Server.APIKeys = keys
		}
	}

	if paths.RedisPassword != "" {
		password, err := src.GetStringSecret(paths.RedisPassword, "password")
		if err != nil {
			return fmt.Errorf("failed to load Redis password from vault: %w", err)
		}
		if password != "" {
			cfg.Store.RedisPassword = password
		}
	}
	return nil
}
