// Package vocab provides canonical display names for skill strings, backed
// by a large CSV vocabulary loaded once per process.
package vocab

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mentorque/skillmatch/internal/matching"
)

// Store maps normalized skill keys to their canonical display titles. The
// vocabulary loads once: the first caller loads synchronously so the first
// request is never served from an empty store, and later triggers are no-ops.
// A missing or unreadable vocabulary file is non-fatal; the store stays empty
// and Titleize falls back to generic capitalization.
type Store struct {
	path string
	log  *zap.Logger

	once   sync.Once
	titles map[string]string
}

// NewStore creates a Store for the vocabulary file at path. Loading is
// deferred until first use.
func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

// Load reads the vocabulary. Idempotent and safe for concurrent callers.
func (s *Store) Load() {
	s.once.Do(s.load)
}

func (s *Store) load() {
	s.titles = make(map[string]string)

	f, err := os.Open(s.path)
	if err != nil {
		s.log.Warn("skill vocabulary unavailable, falling back to generic capitalization",
			zap.String("path", s.path), zap.Error(err))
		return
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Warn("skipping malformed vocabulary row", zap.Error(err))
			continue
		}
		if len(record) == 0 {
			continue
		}
		title := strings.TrimSpace(record[0])
		key := matching.NormalizeKey(title)
		if key == "" {
			continue
		}
		if _, exists := s.titles[key]; !exists {
			s.titles[key] = title
		}
		rows++
	}

	s.log.Info("skill vocabulary loaded",
		zap.String("path", s.path),
		zap.Int("rows", rows),
		zap.Int("entries", len(s.titles)))
}

// Size returns the number of vocabulary entries. Zero means the store is
// running on the capitalization fallback.
func (s *Store) Size() int {
	s.Load()
	return len(s.titles)
}

// lookup finds a display title for term, trying the exact normalized key,
// then a plural trim, then a generic-suffix strip. This is only a display
// aid; equivalence decisions live in the matching package.
func (s *Store) lookup(key string) (string, bool) {
	if title, ok := s.titles[key]; ok {
		return title, true
	}
	if strings.HasSuffix(key, "s") {
		if title, ok := s.titles[strings.TrimSuffix(key, "s")]; ok {
			return title, true
		}
	}
	for _, suffix := range []string{"programming", "development", "engineering"} {
		base := strings.TrimSuffix(key, suffix)
		if base != key && len(base) >= 3 {
			if title, ok := s.titles[base]; ok {
				return title, true
			}
		}
	}
	return "", false
}
