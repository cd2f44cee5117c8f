package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (ammd.toml), if present
// 3. Environment variables (AMMD_ prefix)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults first
	setDefaults(v)

	// 2. Load the configuration file when it exists. A missing default
	// config file is fine; an explicitly requested one is not.
	explicit := configPath != ""
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	loaded, err := loadConfigFile(v, configPath, explicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// 3. Set up environment variable support
	v.SetEnvPrefix("AMMD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Unmarshal into struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if loaded {
		config.configPath = configPath
	}

	// 5. Validate the complete configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadConfigFile reads the configuration file into v. It reports whether a
// file was actually read.
func loadConfigFile(v *viper.Viper, configPath string, required bool) (bool, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if required {
			return false, fmt.Errorf("config file does not exist: %s", configPath)
		}
		return false, nil
	}

	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return false, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return true, nil
}
