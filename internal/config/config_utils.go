package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"resumescore/internal/export"
	"resumescore/internal/scoring"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := structValidator().Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	if _, err := scoring.ByName(c.App.DefaultStrategy); err != nil {
		return fmt.Errorf("app.default_strategy: %w", err)
	}
	if !slices.Contains(export.Templates(), c.App.DefaultTemplate) {
		return fmt.Errorf("app.default_template: unknown template '%s'", c.App.DefaultTemplate)
	}
	if _, ok := export.LookupTheme(c.App.DefaultTheme); !ok {
		return fmt.Errorf("app.default_theme: unknown theme '%s'", c.App.DefaultTheme)
	}
	if c.Vault.Enabled && c.Vault.Token == "" && c.Vault.TokenFile == "" {
		return fmt.Errorf("vault: token or token_file is required when vault is enabled")
	}
	return nil
}

// formatValidationErrors turns validator output into one readable error
// naming each offending field.
func formatValidationErrors(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed '%s=%s' (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed '%s' (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// applyFallbacks applies environment variable fallbacks
func (c *Config) applyFallbacks() {
	c.applyServerAPIKeyFallbacks()
	c.applyObservabilityDefaults()
}

// applyServerAPIKeyFallbacks accepts a comma-separated key list from the
// environment, which viper leaves as a single element.
func (c *Config) applyServerAPIKeyFallbacks() {
	if len(c.Server.APIKeys) == 0 {
		if apiKeysEnv := os.Getenv("RESUMESCORE_SERVER_API_KEYS"); apiKeysEnv != "" {
			c.Server.APIKeys = strings.Split(apiKeysEnv, ",")
		}
	}
	keys := make([]string, 0, len(c.Server.APIKeys))
	for _, key := range c.Server.APIKeys {
		for _, part := range strings.Split(key, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keys = append(keys, part)
			}
		}
	}
	c.Server.APIKeys = keys
}

// applyObservabilityDefaults applies default observability configuration values
func (c *Config) applyObservabilityDefaults() {
	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = generateServiceInstanceID(c.Observability.ServiceName)
	}
	// Set console output based on log level if not explicitly configured
	if c.App.LogLevel == "debug" && !c.Observability.ConsoleOutput {
		c.Observability.ConsoleOutput = true
	}
}

// generateServiceInstanceID generates a unique service instance ID
func generateServiceInstanceID(serviceName string) string {
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	envVars := []string{
		"RESUMESCORE_APP_LOG_LEVEL",
		"RESUMESCORE_APP_DEFAULT_STRATEGY",
		"RESUMESCORE_SERVER_HOST",
		"RESUMESCORE_SERVER_PORT",
		"RESUMESCORE_SERVER_API_KEYS",
		"RESUMESCORE_STORE_BACKEND",
		"RESUMESCORE_STORE_REDIS_ADDR",
		"RESUMESCORE_STORE_REDIS_PASSWORD",
		"RESUMESCORE_VAULT_ENABLED",
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			lower := strings.ToLower(envVar)
			if strings.Contains(lower, "key") || strings.Contains(lower, "password") {
				log.Printf("[CONFIG]   %s=***MASKED***", envVar)
			} else {
				log.Printf("[CONFIG]   %s=%s", envVar, value)
			}
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] Default Strategy: %s", c.App.DefaultStrategy)
	log.Printf("[CONFIG] Server: %s:%s", c.Server.Host, c.Server.Port)
	log.Printf("[CONFIG] API Keys: %d configured", len(c.Server.APIKeys))
	log.Printf("[CONFIG] Store Backend: %s", c.Store.Backend)
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)
	log.Println("[CONFIG] =====================================")
}
