package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/saffronhq/saffron/internal/llm"
	"github.com/saffronhq/saffron/internal/storage"
)

// initStorage opens the database and applies any pending migrations.
func initStorage(ctx context.Context) (*storage.Store, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/saffron/saffron.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// expandPath resolves ~ and environment variables in a configured path.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// llmConfig builds the LLM client configuration from viper. The API key may
// come from config, SAFFRON_LLM_API_KEY, or the provider's conventional
// environment variable.
func llmConfig() llm.Config {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
	}
	if cfg.Provider == "" {
		cfg.Provider = "anthropic"
	}
	if cfg.APIKey == "" {
		switch strings.ToLower(cfg.Provider) {
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}
	if delay := viper.GetDuration("llm.retry_delay"); delay > 0 {
		cfg.RetryDelay = delay
	} else {
		cfg.RetryDelay = time.Second
	}
	return cfg
}
