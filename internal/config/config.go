package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the process configuration for the Kujira API.
type Config struct {
	Port     int    `env:"PORT"           envDefault:"8000"`
	MongoURI string `env:"MONGO_URI"`
	MongoDB  string `env:"MONGO_DATABASE" envDefault:"kujira"`

	// Two independent secrets: one for session tokens, one for
	// verification-code envelopes.
	AuthSecretKey             string `env:"AUTH_SECRET_KEY"`
	VerificationCodeSecretKey string `env:"VERIFICATION_CODE_SECRET_KEY"`

	TokenIssuer   string `env:"TOKEN_ISSUER"   envDefault:"kujira-api"`
	TokenAudience string `env:"TOKEN_AUDIENCE" envDefault:"kujira-app"`
}

// New creates a Config instance from environment variables. Missing required
// variables are a fatal configuration error.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks that required configuration is present.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.AuthSecretKey == "" {
		return fmt.Errorf("missing AUTH_SECRET_KEY environment variable")
	}
	if c.VerificationCodeSecretKey == "" {
		return fmt.Errorf("missing VERIFICATION_CODE_SECRET_KEY environment variable")
	}

	return nil
}
