// Package llm provides the LLM-backed collaborators: theme statement
// generation and quote sentiment/impact labeling.
package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/saffronhq/saffron/internal/common"
)

// Client defines the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for LLM clients.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   int // requests per minute; 0 disables limiting
	Temperature float64
	MaxTokens   int
}

// NewClient creates an LLM client for the configured provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
}

// LabelResponse is a parsed sentiment/impact labeling reply.
type LabelResponse struct {
	Sentiment string
	Impact    int
}

// ParseLabelResponse extracts SENTIMENT/IMPACT lines from a labeling reply.
func ParseLabelResponse(raw string) (LabelResponse, error) {
	resp := LabelResponse{}
	found := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(strings.ToUpper(line), "SENTIMENT:"):
			resp.Sentiment = strings.TrimSpace(line[len("SENTIMENT:"):])
			found = true
		case strings.HasPrefix(strings.ToUpper(line), "IMPACT:"):
			value := strings.TrimSpace(line[len("IMPACT:"):])
			n, err := strconv.Atoi(value)
			if err != nil {
				return resp, fmt.Errorf("invalid impact value %q: %w", value, err)
			}
			resp.Impact = n
			found = true
		}
	}
	if !found {
		return resp, fmt.Errorf("no SENTIMENT or IMPACT line in response")
	}
	return resp, nil
}
