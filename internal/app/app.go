package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"newsbrief/internal/dedupe"
	"newsbrief/internal/fetch"
	"newsbrief/internal/llm"
	"newsbrief/internal/pipeline"
	"newsbrief/internal/server"
	"newsbrief/internal/store"
	"newsbrief/internal/summarize"
)

const (
	DefaultListenAddr = ":8000"
	DefaultStoreKind  = "postgres"

	shutdownGrace = 10 * time.Second
)

// Run wires the components together and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg Config, logger zerolog.Logger) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	st, err := newStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if closer, ok := st.(interface{ Close() }); ok {
		defer closer.Close()
	}

	client := llm.NewOpenAIProvider(cfg.LLMBaseURL, cfg.LLMAPIKey)

	fetcher := &fetch.Client{
		Timeout: cfg.FetchTimeout,
		Logger:  logger,
	}
	proc := &pipeline.Processor{
		Fetcher: fetcher,
		Summarizer: &summarize.Summarizer{
			Client: client,
			Model:  cfg.LLMModel,
			Logger: logger,
		},
		MaxAttempts: cfg.MaxAttempts,
		WordBudget:  cfg.WordBudget,
		Logger:      logger,
	}
	deduper := &dedupe.Deduplicator{
		Client: client,
		Model:  cfg.LLMModel,
		Logger: logger,
	}

	h := &server.ArticleHandler{
		Processor: proc,
		Deduper:   deduper,
		Store:     st,
		Logger:    logger,
	}
	e := server.NewRouter(h, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(cfg.ListenAddr)
	}()
	logger.Info().Str("addr", cfg.ListenAddr).Str("store", cfg.StoreKind).Msg("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newStore(ctx context.Context, cfg Config, logger zerolog.Logger) (store.Store, error) {
	switch cfg.StoreKind {
	case "memory":
		return store.NewMemory(), nil
	default:
		return store.NewPostgres(ctx, cfg.DatabaseDSN, logger)
	}
}
