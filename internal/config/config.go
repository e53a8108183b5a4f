package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	Mode              string        `mapstructure:"mode" yaml:"mode"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RoomGracePeriod   time.Duration `mapstructure:"room_grace_period" yaml:"room_grace_period"`
	CloseDelay        time.Duration `mapstructure:"close_delay" yaml:"close_delay"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		Mode:              "release",
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		RoomGracePeriod:   45 * time.Second,
		CloseDelay:        500 * time.Millisecond,
	}
}

// Debug reports whether the non-production debug surface is enabled.
func (c Config) Debug() bool {
	return c.Mode == "debug"
}
