// Package config loads the daemon configuration file.
package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	// Identities, base58.
	Authority           string `mapstructure:"authority"`
	OperatorWallet      string `mapstructure:"operator_wallet"`
	ProtocolFeeWallet   string `mapstructure:"protocol_fee_wallet"`
	VaultProtocolWallet string `mapstructure:"vault_protocol_wallet"`

	// Oracle.
	HermesEndpoint   string `mapstructure:"hermes_endpoint"`
	PriceFeedID      string `mapstructure:"price_feed_id"`
	PricePollSeconds int    `mapstructure:"price_poll_seconds"`

	// Storage. Empty path selects the in-memory store.
	DatabasePath string `mapstructure:"database_path"`

	MinSeedLamports uint64 `mapstructure:"min_seed_lamports"`
	EventBufferSize int    `mapstructure:"event_buffer_size"`
	DebugLogging    bool   `mapstructure:"debug_logging"`
}

const (
	DefaultHermesEndpoint   = "https://hermes.pyth.network"
	DefaultPricePollSeconds = 60
	DefaultEventBufferSize  = 256
	DefaultMinSeedLamports  = 1
)

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"hermes_endpoint":    DefaultHermesEndpoint,
		"price_poll_seconds": DefaultPricePollSeconds,
		"event_buffer_size":  DefaultEventBufferSize,
		"min_seed_lamports":  DefaultMinSeedLamports,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.Authority == "" {
		return errors.New("missing authority in configuration")
	}
	if cfg.OperatorWallet == "" {
		return errors.New("missing operator_wallet in configuration")
	}
	if cfg.ProtocolFeeWallet == "" {
		return errors.New("missing protocol_fee_wallet in configuration")
	}
	if cfg.VaultProtocolWallet == "" {
		return errors.New("missing vault_protocol_wallet in configuration")
	}
	if cfg.PriceFeedID == "" {
		return errors.New("missing price_feed_id in configuration")
	}
	if cfg.PricePollSeconds <= 0 {
		return errors.New("price_poll_seconds must be positive")
	}
	if cfg.EventBufferSize <= 0 {
		return errors.New("event_buffer_size must be positive")
	}
	return nil
}
