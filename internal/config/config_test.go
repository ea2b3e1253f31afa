package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"engine_url": "http://engine:8000",
		"engine_command": "python -m engine",
		"port": 9090,
		"disable_shuffle": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://engine:8000", cfg.EngineURL)
	assert.Equal(t, "python -m engine", cfg.EngineCommand)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DisableShuffle)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfig(t, "{not json")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Job: "a.txt", JobURL: "https://example.com"}
	assert.Error(t, cfg.Validate(), "job and job_url are mutually exclusive")

	cfg = &Config{Port: 70000}
	assert.Error(t, cfg.Validate())

	cfg = &Config{StartupTimeoutMS: -1}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Job: filepath.Join(t.TempDir(), "missing.txt")}
	assert.Error(t, cfg.Validate())

	jobPath := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(jobPath, []byte("posting"), 0o644))
	cfg = &Config{Job: jobPath, Port: 8080}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{EngineURL: "http://custom:9000"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "http://custom:9000", merged.EngineURL, "explicit value wins")
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "data/skills.csv", merged.VocabPath)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ENGINE_URL", "http://env-engine:8000")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg := &Config{EngineURL: "http://explicit:8000"}
	cfg.FromEnv()

	assert.Equal(t, "http://explicit:8000", cfg.EngineURL, "explicit value wins over env")
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}

func TestSupervisorConfig(t *testing.T) {
	cfg := &Config{
		EngineCommand:    "python -m engine --port 8000",
		EngineDir:        "/srv/engine",
		StartupTimeoutMS: 60000,
		ProbeTimeoutMS:   2000,
		HealthTTLMS:      10000,
	}

	sc := cfg.SupervisorConfig()
	assert.Equal(t, []string{"python", "-m", "engine", "--port", "8000"}, sc.BootstrapCommand)
	assert.Equal(t, "/srv/engine", sc.BootstrapDir)
	assert.Equal(t, time.Minute, sc.StartupTimeout)
	assert.Equal(t, 2*time.Second, sc.ProbeTimeout)
	assert.Equal(t, 10*time.Second, sc.HealthTTL)

	sc = (&Config{}).SupervisorConfig()
	assert.Nil(t, sc.BootstrapCommand)
	assert.Zero(t, sc.StartupTimeout, "zero leaves supervisor defaults in place")
}
