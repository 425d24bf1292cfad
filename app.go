package main

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/snakesss/internal/config"
	"github.com/aaronzipp/snakesss/internal/corpus"
	"github.com/aaronzipp/snakesss/internal/game"
	"github.com/aaronzipp/snakesss/internal/store"
)

// app bundles the long-lived pieces every command needs
type app struct {
	db       *sql.DB
	used     *store.Store
	history  *store.History
	settings *config.Manager
	pool     *game.QuestionPool
}

func openApp() (*app, error) {
	settings, err := config.Load(CLI.Settings)
	if err != nil {
		log.Warn().Err(err).Str("path", CLI.Settings).Msg("bad settings file, using defaults")
	}
	manager := config.NewManager(CLI.Settings, settings)

	questions, err := corpus.Load(CLI.Corpus)
	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}

	db, err := store.OpenSQLite(CLI.DB)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	used := store.New(db)
	if err := used.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising schema: %w", err)
	}
	history, err := store.NewHistory(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening history: %w", err)
	}

	pool, err := game.NewQuestionPool(questions, manager, used, nil)
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Info().
		Int("questions", pool.Size()).
		Str("db", CLI.DB).
		Msg("loaded")

	return &app{
		db:       db,
		used:     used,
		history:  history,
		settings: manager,
		pool:     pool,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}
