package model

import "time"

// Config holds the full TruthLens configuration.
// Tags serve both viper (mapstructure) and `config show/init` (yaml).
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Events   EventsConfig   `yaml:"events" mapstructure:"events"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr            string          `yaml:"addr" mapstructure:"addr"`
	BasePath        string          `yaml:"base_path" mapstructure:"base_path"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is honoured
	TrustedProxies []string `yaml:"trusted_proxies" mapstructure:"trusted_proxies"`
}

// RateLimitConfig configures per-client request throttling (0 rps disables it)
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	// Clients idle longer than IdleTimeout are forgotten every CleanupInterval
	IdleTimeout     time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// AnalysisConfig configures the scorer
type AnalysisConfig struct {
	SimulatedDelay time.Duration `yaml:"simulated_delay" mapstructure:"simulated_delay"`
	Seed           uint64        `yaml:"seed" mapstructure:"seed"` // 0 seeds from the clock
}

// StoreConfig selects the result store backend
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // memory, sqlite, postgres
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// EventsConfig configures analysis event publishing (disabled without brokers)
type EventsConfig struct {
	Brokers []string `yaml:"brokers" mapstructure:"brokers"`
	Topic   string   `yaml:"topic" mapstructure:"topic"`
}

// LogConfig configures the zerolog logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			BasePath:        "/api",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 5,
				Burst:             10,
				IdleTimeout:       5 * time.Minute,
				CleanupInterval:   time.Minute,
			},
		},
		Analysis: AnalysisConfig{
			SimulatedDelay: time.Second,
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Events: EventsConfig{
			Topic: "truthlens.analyses",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
