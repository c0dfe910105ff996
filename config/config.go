// Package config loads bot configuration from an optional config file and
// LINEBRAIN_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the deployment settings of one bot instance.
type Config struct {
	// Name is the bot name; it prefixes the admin list and log blob names.
	Name string `mapstructure:"name"`
	// Domain is the knowledge domain handed to the reasoning engine.
	Domain string `mapstructure:"domain"`
	// LineID is the bot's platform account id ("@" prefixed). Empty falls
	// back to the built-in default in the dispatcher.
	LineID string `mapstructure:"line_id"`
	// ChannelSecret verifies webhook signatures. Empty disables
	// verification (local development only).
	ChannelSecret string `mapstructure:"channel_secret"`
	// Addr is the webhook listen address.
	Addr string `mapstructure:"addr"`
	// DataDir is where the file-backed text store keeps its blobs.
	DataDir string `mapstructure:"data_dir"`
}

// Load reads linebrain.yaml from the working directory or $HOME, then
// applies environment overrides. A missing config file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("linebrain")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	v.SetEnvPrefix("LINEBRAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("name", "eoss")
	v.SetDefault("addr", ":8080")
	v.SetDefault("data_dir", "data")

	// Defaults register the keys so AutomaticEnv can bind them during
	// Unmarshal even when no config file is present.
	v.SetDefault("domain", "")
	v.SetDefault("line_id", "")
	v.SetDefault("channel_secret", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
