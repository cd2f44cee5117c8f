package config

// Config represents the complete ammd configuration
type Config struct {
	// Server section
	Server ServerConfig `toml:"server" mapstructure:"server"`

	// Database section
	Database DatabaseConfig `toml:"database" mapstructure:"database"`

	// Log section
	Log LogConfig `toml:"log" mapstructure:"log"`

	// Internal field for configuration management
	configPath string `toml:"-" mapstructure:"-"`
}

// ServerConfig holds the HTTP API settings
type ServerConfig struct {
	// Addr is the listen address, e.g. "127.0.0.1:6006"
	Addr string `toml:"addr" mapstructure:"addr"`

	// ShutdownTimeout is the graceful shutdown window in seconds
	ShutdownTimeout int `toml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds the state store settings
type DatabaseConfig struct {
	// Path is the directory holding the pebble state database
	Path string `toml:"path" mapstructure:"path"`

	// CacheSize is the number of ledger entries kept in the read cache
	CacheSize int `toml:"cache_size" mapstructure:"cache_size"`
}

// LogConfig holds the logging settings
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" mapstructure:"level"`

	// Format is "text" or "json"
	Format string `toml:"format" mapstructure:"format"`
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	return "ammd.toml"
}

// GetConfigPath returns the path to the configuration file, or the empty
// string when the configuration was built from defaults only
func (c *Config) GetConfigPath() string {
	return c.configPath
}
