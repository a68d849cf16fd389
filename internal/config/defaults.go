package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL      = "https://api.binance.com"
	DefaultAPITimeout   = 30 * time.Second
	DefaultRecvWindow   = 60 * time.Second
	DefaultRetryWait    = 60 * time.Second
	DefaultRateGap      = 1 * time.Second
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 10
	DefaultMinConns     = 2
	DefaultPollInterval = 10 * time.Second
	DefaultWindowDays   = 1
	DefaultFiatPageSize = 500
	DefaultHealthPort   = 8080
)

func (c *ImporterConfig) applyDefaults() {
	// Exchange defaults
	if c.Exchange.RestURL == "" {
		c.Exchange.RestURL = DefaultRestURL
	}
	if c.Exchange.Timeout == 0 {
		c.Exchange.Timeout = DefaultAPITimeout
	}
	if c.Exchange.RecvWindow == 0 {
		c.Exchange.RecvWindow = DefaultRecvWindow
	}
	if c.Exchange.RetryWait == 0 {
		c.Exchange.RetryWait = DefaultRetryWait
	}
	if c.Exchange.RateGap == 0 {
		c.Exchange.RateGap = DefaultRateGap
	}

	// Database defaults
	applyDBDefaults(&c.Database.Postgres)

	// Importer defaults
	if c.Importer.PollInterval == 0 {
		c.Importer.PollInterval = DefaultPollInterval
	}
	if c.Importer.WindowDays == 0 {
		c.Importer.WindowDays = DefaultWindowDays
	}
	if c.Importer.FiatPageSize == 0 {
		c.Importer.FiatPageSize = DefaultFiatPageSize
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
