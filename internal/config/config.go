package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	"freightops/internal/currency"
)

// Config carries the engine's file locations and ambient defaults.
type Config struct {
	ChannelsPath     string             `yaml:"channels_path"`
	BillingRulesPath string             `yaml:"billing_rules_path"`
	BaseCurrency     string             `yaml:"base_currency"`
	ExchangeRates    map[string]float64 `yaml:"exchange_rates"`
	ExportDir        string             `yaml:"export_dir"`
}

// Load builds the configuration from env defaults, optionally overridden by
// the YAML file named in FREIGHTOPS_CONFIG.
func Load() (Config, error) {
	cfg := Config{
		ChannelsPath:     getenvDefault("FREIGHTOPS_CHANNELS", "config/channels.yaml"),
		BillingRulesPath: getenvDefault("FREIGHTOPS_BILLING_RULES", "config/billing_rules.yaml"),
		BaseCurrency:     getenvDefault("FREIGHTOPS_BASE_CURRENCY", "CNY"),
		ExportDir:        getenvDefault("FREIGHTOPS_EXPORT_DIR", "var/reports"),
	}

	if path := os.Getenv("FREIGHTOPS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.BaseCurrency == "" {
		return cfg, errors.New("config: base currency required")
	}
	return cfg, nil
}

// Rates returns the configured exchange rates as a converter table.
func (c Config) Rates() currency.RateTable {
	table := make(currency.RateTable, len(c.ExchangeRates))
	for pair, rate := range c.ExchangeRates {
		table[pair] = rate
	}
	return table
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
