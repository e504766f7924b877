package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.default_strategy", "compact")
	v.SetDefault("app.default_format", "json")
	v.SetDefault("app.default_template", "classic")
	v.SetDefault("app.default_theme", "teal")
	v.SetDefault("app.max_file_size", 1024*1024) // 1MB

	// Server
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.max_request_size", 1024*1024)
	v.SetDefault("server.api_keys", []string{})
	v.SetDefault("server.rate_limit.enabled", false)
	v.SetDefault("server.rate_limit.requests_per_min", 60)
	v.SetDefault("server.rate_limit.burst_capacity", 10)
	v.SetDefault("server.rate_limit.by_ip", true)
	v.SetDefault("server.rate_limit.by_api_key", false)

	// Store
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.key_prefix", "resumescore:resume:")
	v.SetDefault("store.timeout", 5*time.Second)
	v.SetDefault("store.breaker.enabled", true)
	v.SetDefault("store.breaker.max_requests", 3)
	v.SetDefault("store.breaker.interval", 60*time.Second)
	v.SetDefault("store.breaker.timeout", 30*time.Second)
	v.SetDefault("store.breaker.min_requests", 3)
	v.SetDefault("store.breaker.failure_threshold", 0.6)

	// Vault
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.token_file", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.poll_interval", "0s")
	v.SetDefault("vault.secrets.api_keys", "")
	v.SetDefault("vault.secrets.redis_password", "")

	// Observability
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.service_name", "resumescore")
	v.SetDefault("observability.service_version", "")  // Will use app version if empty
	v.SetDefault("observability.service_instance", "") // Derived from hostname if empty
	v.SetDefault("observability.tracing_enabled", true)
	v.SetDefault("observability.metrics_enabled", true)
	v.SetDefault("observability.console_output", false)
	v.SetDefault("observability.pretty_print", true)
	v.SetDefault("observability.sample_rate", 1.0)
	v.SetDefault("observability.collection_interval", 15*time.Second)
	v.SetDefault("observability.otlp_endpoint", "")
	v.SetDefault("observability.otlp_insecure", true)
	v.SetDefault("observability.otlp_headers", map[string]string{})
	v.SetDefault("observability.prometheus_enabled", false)
	v.SetDefault("observability.prometheus_port", "9090")
	v.SetDefault("observability.prometheus_path", "/metrics")
}
