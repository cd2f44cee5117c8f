package config

import "github.com/spf13/viper"

// setDefaults sets the built-in default values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", "127.0.0.1:6006")
	v.SetDefault("server.shutdown_timeout", 10)

	// Database defaults
	v.SetDefault("database.path", "data/state")
	v.SetDefault("database.cache_size", 4096)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
