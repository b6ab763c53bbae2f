package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	// configPathEnv is the environment variable that points to the config file.
	configPathEnv = "CONFIG_PATH"
	// defaultConfigPath is used when configPathEnv is not set.
	defaultConfigPath = "configs/configs.yaml"
)

// configPath returns the path of the config file to load.
func configPath() string {
	if path := os.Getenv(configPathEnv); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadWithViper reads the config file at the given path.
//
// Any key in the file can be overridden with an environment variable named after its path,
// for example DATABASE_PASSWORD overrides database.password.
func loadWithViper(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Allow environment overrides.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("error in viper.ReadInConfig call: %w", err)
	}

	var cfg Config
	// The config model is tagged for YAML, so mapstructure is told to use the same tags.
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) { dc.TagName = "yaml" }); err != nil {
		return Config{}, fmt.Errorf("error in viper.Unmarshal call: %w", err)
	}

	return cfg, nil
}
