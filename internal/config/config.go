package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level application configuration
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Logging    LoggingConfig    `toml:"logging"`
	Storage    StorageConfig    `toml:"storage"`
	Simulation SimulationConfig `toml:"simulation"`
	Airline    AirlineConfig    `toml:"airline"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr               string   `toml:"addr"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// StorageConfig holds persistence settings
type StorageConfig struct {
	DataDir     string `toml:"data_dir"`
	AuditDBPath string `toml:"audit_db_path"`
}

// SimulationConfig holds status simulator settings
type SimulationConfig struct {
	// Minimum seconds between simulation runs. Calls inside the window
	// are no-ops.
	IntervalSeconds int `toml:"interval_seconds"`
}

// AirlineConfig holds airline identity settings
type AirlineConfig struct {
	Name       string `toml:"name"`
	TicketCode string `toml:"ticket_code"` // prefix for ticket numbers, e.g. "RIA"
}

// Default returns the configuration defaults used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:               ":8080",
			CORSAllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			DataDir:     "data",
			AuditDBPath: "data/audit.db",
		},
		Simulation: SimulationConfig{
			IntervalSeconds: 60,
		},
		Airline: AirlineConfig{
			Name:       "RIA International Airways",
			TicketCode: "RIA",
		},
	}
}

// Load reads the TOML configuration file at path, applying defaults for
// anything the file does not set. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.IntervalSeconds < 60 {
		return fmt.Errorf("simulation interval must be at least 60 seconds, got %d", c.Simulation.IntervalSeconds)
	}
	if c.Storage.DataDir == "" {
		return fmt.Errorf("storage data_dir must not be empty")
	}
	if c.Airline.TicketCode == "" {
		return fmt.Errorf("airline ticket_code must not be empty")
	}
	return nil
}
