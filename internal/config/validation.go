package config

import (
	"fmt"
	"net"
)

// ValidateConfig performs validation on the complete configuration
func ValidateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}
	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}
	return nil
}

func validateServerConfig(server *ServerConfig) error {
	if server.Addr == "" {
		return fmt.Errorf("server addr cannot be empty")
	}
	if _, _, err := net.SplitHostPort(server.Addr); err != nil {
		return fmt.Errorf("invalid server addr %q: %w", server.Addr, err)
	}
	if server.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout cannot be negative")
	}
	return nil
}

func validateDatabaseConfig(db *DatabaseConfig) error {
	if db.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if db.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative")
	}
	return nil
}

func validateLogConfig(log *LogConfig) error {
	switch log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", log.Level)
	}
	switch log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", log.Format)
	}
	return nil
}
