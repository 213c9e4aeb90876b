package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load("testdata/config.toml")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "CYSN", cfg.Station.AirportCode)
	assert.Equal(t, 321.0, cfg.Station.ElevationFeet)
	require.Len(t, cfg.Station.Runways, 2)
	assert.Equal(t, "24", cfg.Station.Runways[1].Name)
	assert.Equal(t, 240.0, cfg.Station.Runways[1].HeadingDeg)
	assert.False(t, cfg.Storage.Enabled)

	// Values absent from the file keep their defaults.
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, "./www", cfg.Server.StaticFilesDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.toml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "empty dataset path",
			mutate:  func(c *Config) { c.Dataset.Path = "" },
			wantErr: true,
		},
		{
			name:    "runway heading out of range",
			mutate:  func(c *Config) { c.Station.Runways[0].HeadingDeg = 360 },
			wantErr: true,
		},
		{
			name:    "storage enabled without path",
			mutate:  func(c *Config) { c.Storage.DatabasePath = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}
