package app

import (
	"errors"
	"strings"
	"time"
)

// Config holds runtime configuration for the service.
type Config struct {
	// HTTP
	ListenAddr string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Storage
	DatabaseDSN string
	StoreKind   string // "postgres" or "memory"

	// Pipeline tuning
	FetchTimeout time.Duration
	MaxAttempts  int
	WordBudget   int

	Verbose bool
}

// Validate reports configuration errors before any component starts.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return errors.New("config: listen address is required")
	}
	if strings.TrimSpace(cfg.LLMAPIKey) == "" {
		return errors.New("config: llm.key is required (or set LLM_API_KEY / GROQ_API_KEY)")
	}
	if strings.TrimSpace(cfg.LLMModel) == "" {
		return errors.New("config: llm.model is required (or set LLM_MODEL)")
	}
	switch cfg.StoreKind {
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseDSN) == "" {
			return errors.New("config: db.dsn is required for the postgres store (or set DATABASE_URL)")
		}
	case "memory":
	default:
		return errors.New("config: store must be \"postgres\" or \"memory\"")
	}
	if cfg.MaxAttempts < 1 {
		return errors.New("config: attempts must be at least 1")
	}
	if cfg.WordBudget < 0 {
		return errors.New("config: negative word budget is not allowed")
	}
	return nil
}
