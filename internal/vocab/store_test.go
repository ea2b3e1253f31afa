package vocab

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeVocab(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skills.csv")
	require.NoError(t, os.WriteFile(path, []byte(rows), 0o644))
	return path
}

func TestStore_LoadAndTitleize(t *testing.T) {
	path := writeVocab(t, "Node.js\nReact\nMachine Learning\nTerraform\n")
	s := NewStore(path, zap.NewNop())

	assert.Equal(t, 4, s.Size())
	assert.Equal(t, "Node.js", s.Titleize("nodejs"))
	assert.Equal(t, "React", s.Titleize("  react "))
	assert.Equal(t, "Machine Learning", s.Titleize("machine learning"))
}

func TestStore_LoadLogsRowAndEntryCounts(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	// Duplicate keys collapse, so rows and entries diverge.
	path := writeVocab(t, "React\nreact\nTerraform\n")
	s := NewStore(path, zap.New(core))
	s.Load()

	entries := observed.FilterMessage("skill vocabulary loaded").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.EqualValues(t, 3, ctx["rows"])
	assert.EqualValues(t, 2, ctx["entries"])
}

func TestStore_SpecialCasesBeatVocabulary(t *testing.T) {
	path := writeVocab(t, "aws\nci/cd\n")
	s := NewStore(path, zap.NewNop())

	assert.Equal(t, "AWS", s.Titleize("aws"))
	assert.Equal(t, "CI/CD", s.Titleize("ci/cd"))
	assert.Equal(t, "CI/CD", s.Titleize("cicd"))
	assert.Equal(t, "C#", s.Titleize("c sharp"))
}

func TestStore_MissingFileFallsBack(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "absent.csv"), zap.NewNop())

	assert.Equal(t, 0, s.Size())
	assert.Equal(t, "Distributed Systems", s.Titleize("distributed systems"))
	assert.Equal(t, "Golang", s.Titleize("golang"))
	assert.Equal(t, "AWS", s.Titleize("aws"), "special cases survive an empty store")
}

func TestStore_FuzzyDisplayLookup(t *testing.T) {
	path := writeVocab(t, "Dashboard\nJava\n")
	s := NewStore(path, zap.NewNop())

	assert.Equal(t, "Dashboard", s.Titleize("dashboards"), "plural trims to vocabulary entry")
	assert.Equal(t, "Java", s.Titleize("java programming"), "generic suffix strips to vocabulary entry")
}

func TestStore_LoadOnce(t *testing.T) {
	path := writeVocab(t, "Go\nRust\n")
	s := NewStore(path, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Load()
			assert.Equal(t, 2, s.Size())
		}()
	}
	wg.Wait()

	// Replacing the file after the first load changes nothing.
	require.NoError(t, os.WriteFile(path, []byte("Python\n"), 0o644))
	s.Load()
	assert.Equal(t, 2, s.Size())
}
