package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "RIA", cfg.Airline.TicketCode)
	assert.Equal(t, 60, cfg.Simulation.IntervalSeconds)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
addr = ":9090"

[logging]
level = "debug"

[simulation]
interval_seconds = 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 120, cfg.Simulation.IntervalSeconds)

	// Unset sections keep their defaults
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Equal(t, "RIA", cfg.Airline.TicketCode)
}

func TestLoadRejectsShortInterval(t *testing.T) {
	path := writeConfig(t, `
[simulation]
interval_seconds = 10
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "at least 60 seconds")
}

func TestLoadRejectsEmptyTicketCode(t *testing.T) {
	path := writeConfig(t, `
[airline]
ticket_code = ""
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "ticket_code")
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, `this is not toml = = =`)

	_, err := Load(path)
	assert.Error(t, err)
}
