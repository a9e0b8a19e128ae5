package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supersim-ai/drivesim/internal/orchestrator"
	"github.com/supersim-ai/drivesim/internal/physics"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"drive": { "maxPlays": 12 },
		"physics": { "ticks": 60, "forces": { "run": 50000 } },
		"storage": { "type": "sqlite", "sqlite": { "dumpInterval": "30s" } }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, 12, GetInt("drive.maxPlays"))

	p := GetPhysicsConfig()
	assert.Equal(t, 60, p.Ticks)
	assert.Equal(t, 50000.0, p.Forces.Run)
	assert.Equal(t, 30000.0, p.Forces.Pursuit)

	s := GetStorageConfig()
	assert.Equal(t, "sqlite", s.Type)
	assert.Equal(t, 30*time.Second, s.SQLite.DumpInterval)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "./logs", GetString("logsDir"))
	assert.Equal(t, physics.DefaultConfig(), GetPhysicsConfig())

	o := GetOrchestratorConfig()
	want := orchestrator.DefaultConfig()
	want.Ticks = 120
	assert.Equal(t, want, o)

	c := GetCoachConfig()
	assert.Equal(t, "heuristic", c.Type)
	assert.Equal(t, 5*time.Second, c.Timeout)
	assert.Equal(t, 45, c.FieldGoalRange)

	s := GetStorageConfig()
	assert.Equal(t, "memory", s.Type)
	assert.Equal(t, "./drives", s.Memory.OutputDir)
	assert.True(t, s.Memory.CompressOutput)
	assert.Equal(t, 3*time.Minute, s.SQLite.DumpInterval)
	assert.Equal(t, "drivesim", s.Postgres.Database)

	i := GetInfluxConfig()
	assert.False(t, i.Enabled)
	assert.Equal(t, "http://localhost:8086", i.URL())

	ot := GetOTelConfig()
	assert.False(t, ot.Enabled)
	assert.Equal(t, "drivesim", ot.ServiceName)
	assert.Equal(t, 15*time.Second, ot.Interval)

	assert.False(t, GetAPIConfig().Enabled)
	assert.Equal(t, "localhost:12201", GetGraylogConfig().Address)
	assert.Equal(t, 4, GetInt("batch.workers"))
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("DRIVESIM_COACH_TYPE", "ollama")

	require.NoError(t, Load(writeConfig(t, `{}`)))
	assert.Equal(t, "ollama", GetCoachConfig().Type)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
	// defaults still apply
	assert.Equal(t, 20, GetInt("drive.maxPlays"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", true)
	assert.True(t, GetBool("testKey"))
}
