package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (RESUMESCORE_SERVER_API_KEYS, etc.)
// 4. Default values - Lowest priority
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Store         StoreConfig         `mapstructure:"store"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel        string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	DefaultStrategy string `mapstructure:"default_strategy" validate:"required"`
	DefaultFormat   string `mapstructure:"default_format" validate:"oneof=json text markdown"`
	DefaultTemplate string `mapstructure:"default_template" validate:"required"`
	DefaultTheme    string `mapstructure:"default_theme" validate:"required"`
	MaxFileSize     int64  `mapstructure:"max_file_size" validate:"gt=0"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string          `mapstructure:"host"`
	Port           string          `mapstructure:"port" validate:"required,numeric"`
	ReadTimeout    time.Duration   `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration   `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout    time.Duration   `mapstructure:"idle_timeout"`
	MaxRequestSize int64           `mapstructure:"max_request_size" validate:"gt=0"`
	APIKeys        []string        `mapstructure:"api_keys"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	RequestsPerMin int  `mapstructure:"requests_per_min" validate:"gte=1"`
	BurstCapacity  int  `mapstructure:"burst_capacity" validate:"gte=1"`
	ByIP           bool `mapstructure:"by_ip"`
	ByAPIKey       bool `mapstructure:"by_api_key"`
}

// StoreConfig selects and tunes the resume store backend
type StoreConfig struct {
	Backend       string        `mapstructure:"backend" validate:"oneof=memory file redis"`
	Path          string        `mapstructure:"path" validate:"required_if=Backend file"`
	RedisAddr     string        `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" validate:"gte=0"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Breaker       BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig represents circuit breaker configuration
type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`           // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"max_requests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`          // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`           // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"min_requests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failure_threshold" validate:"gte=0,lte=1"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled            bool              `mapstructure:"enabled"`
	ServiceName        string            `mapstructure:"service_name" validate:"required"`
	ServiceVersion     string            `mapstructure:"service_version"`
	ServiceInstance    string            `mapstructure:"service_instance"`
	TracingEnabled     bool              `mapstructure:"tracing_enabled"`
	MetricsEnabled     bool              `mapstructure:"metrics_enabled"`
	ConsoleOutput      bool              `mapstructure:"console_output"`
	PrettyPrint        bool              `mapstructure:"pretty_print"`
	SampleRate         float64           `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	CollectionInterval time.Duration     `mapstructure:"collection_interval" validate:"gt=0"`
	OTLPEndpoint       string            `mapstructure:"otlp_endpoint"`
	OTLPInsecure       bool              `mapstructure:"otlp_insecure"`
	OTLPHeaders        map[string]string `mapstructure:"otlp_headers"`
	PrometheusEnabled  bool              `mapstructure:"prometheus_enabled"`
	PrometheusPort     string            `mapstructure:"prometheus_port" validate:"omitempty,numeric"`
	PrometheusPath     string            `mapstructure:"prometheus_path"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	// A .env file is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	v.SetEnvPrefix("RESUMESCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'RESUMESCORE'")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumescore/")
	v.AddConfigPath("$HOME/.resumescore")
	v.AddConfigPath(".")

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	cfg.logConfigurationSources(configFileUsed)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return cfg, nil
}

// Default returns the configuration built from defaults alone. Tests and
// embedded uses start here.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyFallbacks()
	return &cfg, nil
}
