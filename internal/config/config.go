package config

import "time"

// ImporterConfig is the root configuration for the import daemon.
type ImporterConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Database DatabaseConfig `yaml:"database"`
	Importer ImportConfig   `yaml:"importer"`
	Secrets  SecretsConfig  `yaml:"secrets"`
	Health   HealthConfig   `yaml:"health"`
}

// InstanceConfig identifies this daemon instance.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// ExchangeConfig holds exchange API settings.
type ExchangeConfig struct {
	RestURL    string        `yaml:"rest_url"`
	Timeout    time.Duration `yaml:"timeout"`
	RecvWindow time.Duration `yaml:"recv_window"` // signed-request tolerance window
	RetryWait  time.Duration `yaml:"retry_wait"`  // fixed delay between throttle retries
	MaxRetries int           `yaml:"max_retries"` // 0 = retry throttles indefinitely
	RateGap    time.Duration `yaml:"rate_gap"`    // courtesy gap before rate-limited endpoints
}

// DatabaseConfig holds the Postgres connection.
type DatabaseConfig struct {
	Postgres DBConfig `yaml:"postgres"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ImportConfig holds import daemon settings.
type ImportConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"` // how often the daemon checks whether a new UTC day started
	WindowDays   int           `yaml:"window_days"`   // size of the [now - window, now] import window
	FiatPageSize int           `yaml:"fiat_page_size"`
}

// SecretsConfig holds the passphrase protecting credential key material.
type SecretsConfig struct {
	EncryptionKey string `yaml:"encryption_key"`
}

// HealthConfig holds the health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
