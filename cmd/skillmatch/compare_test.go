package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorque/skillmatch/internal/config"
)

func TestReadJobTextFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte("We need Go engineers."), 0o644))

	text, err := readJobText(context.Background(), config.Config{Job: path})
	require.NoError(t, err)
	assert.Equal(t, "We need Go engineers.", text)
}

func TestReadJobTextFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><main>Remote posting body</main></body></html>`))
	}))
	defer srv.Close()

	text, err := readJobText(context.Background(), config.Config{JobURL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "Remote posting body", text)
}

func TestReadJobTextMissingFile(t *testing.T) {
	_, err := readJobText(context.Background(), config.Config{Job: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"engine_url": "http://from-file:8000", "port": 9000}`), 0o644))

	t.Setenv("ENGINE_URL", "")

	// Flag value wins over the file, file wins over defaults.
	cfg, err := loadConfig(config.Config{EngineURL: "http://from-flag:8000"}, path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag:8000", cfg.EngineURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "data/skills.csv", cfg.VocabPath)
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"port": -1}`), 0o644))

	_, err := loadConfig(config.Config{}, path)
	assert.Error(t, err)
}
