package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"newsbrief/internal/app"
)

const (
	defaultLLMBaseURL = "https://api.groq.com/openai/v1"
	defaultLLMModel   = "llama-3.3-70b-versatile"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// .env is optional; real env always wins over it.
	_ = godotenv.Load()

	var (
		addr         string
		configPath   string
		llmBaseURL   string
		llmModel     string
		llmKey       string
		dbDSN        string
		storeKind    string
		fetchTimeout time.Duration
		attempts     int
		wordBudget   int
		verbose      bool
	)

	flag.StringVar(&addr, "addr", listenAddrFromEnv(), "HTTP listen address")
	flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "Path to YAML or JSON config file")
	flag.StringVar(&llmBaseURL, "llm.base", envOr("LLM_BASE_URL", defaultLLMBaseURL), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", envOr("LLM_MODEL", defaultLLMModel), "Model name")
	flag.StringVar(&llmKey, "llm.key", apiKeyFromEnv(), "API key for the OpenAI-compatible server")
	flag.StringVar(&dbDSN, "db.dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	flag.StringVar(&storeKind, "store", envOr("STORE", app.DefaultStoreKind), "Article store backend: postgres or memory")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-request fetch timeout (0 uses the default)")
	flag.IntVar(&attempts, "fetch.attempts", 0, "Fetch attempts per article (0 uses the default)")
	flag.IntVar(&wordBudget, "wordBudget", 0, "Maximum words passed to the summarizer (0 uses the default)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		ListenAddr:   addr,
		LLMBaseURL:   llmBaseURL,
		LLMModel:     llmModel,
		LLMAPIKey:    llmKey,
		DatabaseDSN:  dbDSN,
		StoreKind:    storeKind,
		FetchTimeout: fetchTimeout,
		MaxAttempts:  attempts,
		WordBudget:   wordBudget,
		Verbose:      verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config file")
		}
		app.ApplyFileConfig(&cfg, fc)
		if cfg.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// listenAddrFromEnv honors a bare PORT value as well as a full ADDR.
func listenAddrFromEnv() string {
	if v := os.Getenv("ADDR"); v != "" {
		return v
	}
	if p := os.Getenv("PORT"); p != "" {
		return ":" + p
	}
	return app.DefaultListenAddr
}

func apiKeyFromEnv() string {
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		return v
	}
	return os.Getenv("GROQ_API_KEY")
}
