// Package config holds the runtime settings of the binary. The game protocol
// itself carries no settings; everything here tunes logging and the agent.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyLogLevel     = "logLevel"
	KeyPlaybook     = "playbook"
	KeyRenderBlocks = "renderBlocks"
	KeyMaxBulk      = "maxBulk"
)

// EnvPrefix prefixes the environment variable of every key, e.g. RAMPART_MAXBULK.
const EnvPrefix = "RAMPART"

// Load sets default values, then layers the config file and the environment
// on top. An empty path looks for rampart.{json,yaml,toml} in the working
// directory and tolerates its absence; an explicit path must exist.
func Load(path string) error {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyPlaybook, "")
	viper.SetDefault(KeyRenderBlocks, false)
	viper.SetDefault(KeyMaxBulk, 1000)

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return nil
	}

	viper.SetConfigName("rampart")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// LogLevel parses the logLevel setting, falling back to info.
func LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(viper.GetString(KeyLogLevel)))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
