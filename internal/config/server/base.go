package server

import (
	"fmt"

	"github.com/spf13/viper"
)

type BaseServerConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log      LogServerConfig      `mapstructure:"log"      yaml:"log"`
	Database DatabaseServerConfig `mapstructure:"database" yaml:"database"`
	HTTP     HTTPServerConfig     `mapstructure:"http"     yaml:"http"`
	Filter   FilterServerConfig   `mapstructure:"filter"   yaml:"filter"`
}

func LoadServerConfig() (*BaseServerConfig, error) {
	cfg := &BaseServerConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if _, err := cfg.Filter.Location(); err != nil {
		return nil, err
	}
	if _, err := cfg.Filter.Weekday(); err != nil {
		return nil, err
	}

	switch cfg.Database.Type {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database type '%s'", cfg.Database.Type)
	}

	return cfg, nil
}
