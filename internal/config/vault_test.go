package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/errors"
)

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name        string
		input       any
		expected    int64
		expectError bool
	}{
		{name: "json number", input: json.Number("7"), expected: 7},
		{name: "int64 value", input: int64(42), expected: 42},
		{name: "float64 value", input: float64(42.0), expected: 42},
		{name: "string value", input: "42", expected: 42},
		{name: "invalid string value", input: "not-a-number", expectError: true},
		{name: "unsupported type", input: []string{"42"}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseVersionValue(tt.input, "secret/data/test")
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolveVaultToken(t *testing.T) {
	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct-token"})
		assert.NoError(t, err)
		assert.Equal(t, "direct-token", token)
	})

	t.Run("token from file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "vault-token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  file-token  \n"), 0600))

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile})
		assert.NoError(t, err)
		assert.Equal(t, "file-token", token)
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token/file"})
		assert.ErrorContains(t, err, "failed to read vault token file")
		assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	})

	t.Run("no token provided", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{})
		assert.ErrorContains(t, err, "vault token is required")
	})
}

func TestDecodeKVv2(t *testing.T) {
	tests := []struct {
		name        string
		secret      *api.Secret
		expectError string
	}{
		{
			name: "valid",
			secret: &api.Secret{Data: map[string]any{
				"data":     map[string]any{"keys": "a,b"},
				"metadata": map[string]any{"version": json.Number("2")},
			}},
		},
		{
			name:        "missing data",
			secret:      &api.Secret{Data: map[string]any{"keys": "a"}},
			expectError: "missing 'data' field",
		},
		{
			name: "missing metadata",
			secret: &api.Secret{Data: map[string]any{
				"data": map[string]any{"keys": "a"},
			}},
			expectError: "missing 'metadata' field",
		},
		{
			name: "missing version",
			secret: &api.Secret{Data: map[string]any{
				"data":     map[string]any{"keys": "a"},
				"metadata": map[string]any{},
			}},
			expectError: "missing 'version' field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeKVv2(tt.secret, "secret/data/test")
			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(2), got.Version)
			assert.Equal(t, "a,b", got.Data["keys"])
		})
	}
}

type fakeSecrets map[string]map[string]string

func (f fakeSecrets) GetStringSecret(path, key string) (string, error) {
	data, ok := f[path]
	if !ok {
		return "", fmt.Errorf("secret not found at path: %s", path)
	}
	return data[key], nil
}

func TestApplySecrets(t *testing.T) {
	src := fakeSecrets{
		"secret/data/api":   {"keys": " k1, k2 ,,k3"},
		"secret/data/redis": {"password": "hunter2"},
	}

	cfg := Default()
	cfg.Server.APIKeys = []string{"from-file"}
	cfg.Vault.Secrets = VaultSecrets{APIKeys: "secret/data/api", RedisPassword: "secret/data/redis"}

	require.NoError(t, applySecrets(src, cfg))
	assert.Equal(t, []string{"k1", "k2", "k3"}, cfg.Server.APIKeys)
	assert.Equal(t, "hunter2", cfg.Store.RedisPassword)

	cfg.Vault.Secrets.APIKeys = "secret/data/missing"
	assert.ErrorContains(t, applySecrets(src, cfg), "failed to load API keys from vault")
}

func TestApplySecretsKeepsExistingOnEmptyValue(t *testing.T) {
	src := fakeSecrets{"secret/data/api": {"keys": ""}}

	cfg := Default()
	cfg.Server.APIKeys = []string{"from-file"}
	cfg.Vault.Secrets.APIKeys = "secret/data/api"

	require.NoError(t, applySecrets(src, cfg))
	assert.Equal(t, []string{"from-file"}, cfg.Server.APIKeys)
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := Default()
	cfg.Server.APIKeys = []string{"unchanged"}
	require.NoError(t, ApplyVaultSecrets(cfg, nil))
	assert.Equal(t, []string{"unchanged"}, cfg.Server.APIKeys)
}

// newFakeVault serves the two endpoints the client touches: the health
// check and a single KV v2 read.
func newFakeVault(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/sys/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"initialized":true,"sealed":false,"standby":false,"version":"1.15.0"}`))
	})
	mux.HandleFunc("/v1/secret/data/resumescore", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "root" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"data":{"keys":"alpha,beta","password":"pw"},"metadata":{"version":4}}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestApplyVaultSecretsAgainstServer(t *testing.T) {
	srv := newFakeVault(t)

	cfg := Default()
	cfg.Vault = VaultConfig{
		Enabled: true,
		Address: srv.URL,
		Token:   "root",
		Secrets: VaultSecrets{
			APIKeys:       "secret/data/resumescore",
			RedisPassword: "secret/data/resumescore",
		},
	}

	require.NoError(t, ApplyVaultSecrets(cfg, errors.Discard()))
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Server.APIKeys)
	assert.Equal(t, "pw", cfg.Store.RedisPassword)
}

func TestVaultClientReadsVersion(t *testing.T) {
	srv := newFakeVault(t)

	client, err := NewVaultClient(VaultConfig{Enabled: true, Address: srv.URL, Token: "root"}, nil)
	require.NoError(t, err)

	secret, err := client.GetSecretV2("secret/data/resumescore")
	require.NoError(t, err)
	assert.Equal(t, int64(4), secret.Version)

	_, err = client.GetStringSecret("secret/data/resumescore", "nope")
	assert.ErrorContains(t, err, "key 'nope' not found")
}
