package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested
// sections map naturally to the flag names.
type FileConfig struct {
	Addr string `yaml:"addr" json:"addr"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	DB struct {
		DSN string `yaml:"dsn" json:"dsn"`
	} `yaml:"db" json:"db"`

	Store string `yaml:"store" json:"store"`

	Fetch struct {
		Timeout  time.Duration `yaml:"timeout" json:"timeout"`
		Attempts int           `yaml:"attempts" json:"attempts"`
	} `yaml:"fetch" json:"fetch"`

	WordBudget int  `yaml:"wordBudget" json:"wordBudget"`
	Verbose    bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for fields that
// still hold their flag defaults. Flags and environment keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if (cfg.ListenAddr == "" || cfg.ListenAddr == DefaultListenAddr) && fc.Addr != "" {
		cfg.ListenAddr = fc.Addr
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.DatabaseDSN == "" && fc.DB.DSN != "" {
		cfg.DatabaseDSN = fc.DB.DSN
	}
	if (cfg.StoreKind == "" || cfg.StoreKind == DefaultStoreKind) && fc.Store != "" {
		cfg.StoreKind = fc.Store
	}
	if cfg.FetchTimeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.FetchTimeout = fc.Fetch.Timeout
	}
	if cfg.MaxAttempts == 0 && fc.Fetch.Attempts > 0 {
		cfg.MaxAttempts = fc.Fetch.Attempts
	}
	if cfg.WordBudget == 0 && fc.WordBudget > 0 {
		cfg.WordBudget = fc.WordBudget
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
