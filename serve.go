package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aaronzipp/snakesss/internal/handlers"
	"github.com/aaronzipp/snakesss/internal/store"
)

const shutdownTimeout = 5 * time.Second

func serveCommand(ctx context.Context) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	h := &handlers.Context{
		Rooms:     store.NewRegistry[*handlers.Room](),
		Questions: a.pool,
		Settings:  a.settings,
		History:   a.history,
		PublicURL: CLI.Serve.PublicURL,
	}

	srv := &http.Server{
		Addr:              CLI.Serve.Addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		// Streams only end once their session is gone
		h.CloseAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Msgf("Server starting on http://localhost%s", CLI.Serve.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
