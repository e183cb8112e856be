// Package config loads asyncdoc project configuration from asyncdoc.yml
// with environment-variable overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the asyncdoc configuration.
type Config struct {
	Manifest string       `mapstructure:"manifest"`
	Output   OutputConfig `mapstructure:"output"`
	Serve    ServeConfig  `mapstructure:"serve"`
}

// OutputConfig controls where and how the compiled document is written.
type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// ServeConfig controls the document preview server.
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load loads the configuration from asyncdoc.yml or asyncdoc.yaml in the
// working directory, falling back to defaults when no file exists.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("manifest", "asyncdoc.manifest.yaml")
	v.SetDefault("output.path", "asyncapi.json")
	v.SetDefault("output.format", "json")
	v.SetDefault("serve.host", "localhost")
	v.SetDefault("serve.port", 4455)

	v.SetConfigName("asyncdoc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ASYNCDOC")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(c *Config) error {
	switch c.Output.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (expected json or yaml)", c.Output.Format)
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		return fmt.Errorf("invalid serve port %d", c.Serve.Port)
	}
	return nil
}
