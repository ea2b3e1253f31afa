package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mentorque/skillmatch/internal/compare"
	"github.com/mentorque/skillmatch/internal/config"
	"github.com/mentorque/skillmatch/internal/engine"
	"github.com/mentorque/skillmatch/internal/logger"
	"github.com/mentorque/skillmatch/internal/scoring"
	"github.com/mentorque/skillmatch/internal/store"
	"github.com/mentorque/skillmatch/internal/vocab"
)

// loadConfig merges the optional config file, environment variables, and
// defaults, in that precedence order under any explicit flag values already
// set on cfg.
func loadConfig(cfg config.Config, path string) (config.Config, error) {
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = cfg.MergeWithDefaults(*loaded)
	}

	cfg.FromEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildApp wires the comparison service and its collaborators from config.
// The returned store is nil when no database is configured.
func buildApp(ctx context.Context, cfg config.Config) (*compare.Service, *engine.Supervisor, *store.Store, *zap.Logger, error) {
	log, err := logger.New(cfg.JSONLogs, cfg.Verbose)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	client := engine.NewClient(cfg.EngineURL, cfg.RequestTimeout(), log)
	supervisor := engine.NewSupervisor(client, cfg.SupervisorConfig(), log)

	var history *store.Store
	if cfg.DatabaseURL != "" {
		history, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	var shuffler *scoring.Shuffler
	if !cfg.DisableShuffle {
		shuffler = scoring.NewShuffler(time.Now().UnixNano())
	}

	vocabStore := vocab.NewStore(cfg.VocabPath, log)

	var recorder compare.Recorder
	if history != nil {
		recorder = history
	}
	svc := compare.NewService(supervisor, vocabStore, shuffler, recorder, log)

	return svc, supervisor, history, log, nil
}
