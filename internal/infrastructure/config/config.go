package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Accounts
	LoanApproval    string `env:"LOAN_APPROVAL"    envDefault:"always"`
	StrictAmounts   bool   `env:"STRICT_AMOUNTS"   envDefault:"false"`
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"EUR"`
	BcryptCost      int    `env:"BCRYPT_COST"      envDefault:"10"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
