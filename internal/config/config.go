package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the top-level application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Station StationConfig `toml:"station"`
	Dataset DatasetConfig `toml:"dataset"`
	Storage StorageConfig `toml:"storage"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Host                string   `toml:"host"`
	Port                int      `toml:"port"`
	CORSAllowedOrigins  []string `toml:"cors_allowed_origins"`
	StaticFilesDir      string   `toml:"static_files_dir"`
	ReadTimeoutSeconds  int      `toml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `toml:"write_timeout_seconds"`
	IdleTimeoutSeconds  int      `toml:"idle_timeout_seconds"`
}

// LoggingConfig represents the logger configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, console
}

// StationConfig describes the home airport briefings are computed for
type StationConfig struct {
	AirportCode   string         `toml:"airport_code"`
	AirportName   string         `toml:"airport_name"`
	Latitude      float64        `toml:"latitude"`
	Longitude     float64        `toml:"longitude"`
	ElevationFeet float64        `toml:"elevation_feet"`
	Runways       []RunwayConfig `toml:"runways"`
}

// RunwayConfig describes a single runway at the station
type RunwayConfig struct {
	Name       string  `toml:"name"`
	HeadingDeg float64 `toml:"heading_deg"` // magnetic
	LengthFt   float64 `toml:"length_ft"`
}

// DatasetConfig points at the aircraft performance dataset
type DatasetConfig struct {
	Path string `toml:"path"`
}

// StorageConfig represents the query history storage configuration
type StorageConfig struct {
	Enabled      bool   `toml:"enabled"`
	DatabasePath string `toml:"database_path"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			CORSAllowedOrigins:  []string{"*"},
			StaticFilesDir:      "./www",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 15,
			IdleTimeoutSeconds:  60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Station: StationConfig{
			AirportCode:   "CYKF",
			AirportName:   "Region of Waterloo International",
			Latitude:      43.4608,
			Longitude:     -80.3786,
			ElevationFeet: 1055,
			Runways: []RunwayConfig{
				{Name: "08", HeadingDeg: 80, LengthFt: 7002},
				{Name: "26", HeadingDeg: 260, LengthFt: 7002},
				{Name: "14", HeadingDeg: 140, LengthFt: 4100},
				{Name: "32", HeadingDeg: 320, LengthFt: 4100},
			},
		},
		Dataset: DatasetConfig{
			Path: "./data/c172s.json",
		},
		Storage: StorageConfig{
			Enabled:      true,
			DatabasePath: "./poh-perf.db",
		},
	}
}

// Load reads the TOML configuration file at path on top of the defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset path must not be empty")
	}

	for _, rwy := range c.Station.Runways {
		if rwy.Name == "" {
			return fmt.Errorf("runway name must not be empty")
		}
		if rwy.HeadingDeg < 0 || rwy.HeadingDeg >= 360 {
			return fmt.Errorf("runway %s heading must be in [0, 360), got %f", rwy.Name, rwy.HeadingDeg)
		}
	}

	if c.Storage.Enabled && c.Storage.DatabasePath == "" {
		return fmt.Errorf("storage database path must not be empty when storage is enabled")
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
