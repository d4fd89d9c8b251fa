package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saffronhq/saffron/internal/common"
	"github.com/saffronhq/saffron/internal/model"
)

// maxPromptQuotes caps how many member quotes are included in a statement
// prompt.
const maxPromptQuotes = 10

// Generator produces executive-ready theme statements through an LLM client.
// It implements the engine's StatementGenerator contract; callers treat its
// output as opaque prose and fall back to a template on failure.
type Generator struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   common.RetryOptions
}

// NewGenerator creates a statement generator over the given client.
func NewGenerator(client Client, cfg Config, logger *slog.Logger) *Generator {
	retryOpts := common.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Generator{
		client:      client,
		logger:      logger,
		rateLimiter: newRateLimiter(cfg.RateLimit),
		retryOpts:   retryOpts,
	}
}

// GenerateStatement asks the LLM for a one-sentence theme statement.
func (g *Generator) GenerateStatement(ctx context.Context, theme *model.ValidatedTheme) (string, error) {
	if err := g.rateLimiter.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit error: %w", err)
	}

	prompt := buildStatementPrompt(theme)

	var statement string
	err := common.WithRetry(ctx, func() error {
		response, err := g.client.Complete(ctx, prompt)
		if err != nil {
			g.logger.Warn("statement generation attempt failed",
				"error", err,
				"theme_type", theme.Type,
				"key", theme.Key)
			return &common.RetryableError{Err: err, Retryable: true}
		}
		statement = strings.TrimSpace(response)
		if statement == "" {
			return &common.RetryableError{Err: fmt.Errorf("empty statement"), Retryable: true}
		}
		return nil
	}, g.retryOpts)

	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrGenerationFailed, err)
	}

	g.logger.Debug("generated theme statement",
		"theme_type", theme.Type,
		"key", theme.Key)

	return statement, nil
}

// buildStatementPrompt creates the prompt for theme statement generation.
func buildStatementPrompt(theme *model.ValidatedTheme) string {
	var quotes strings.Builder
	for i, q := range theme.Quotes {
		if i >= maxPromptQuotes {
			break
		}
		fmt.Fprintf(&quotes, "- [%s, %s deal, impact %d/5] %q\n",
			q.Company, q.DealOutcome, q.Impact, q.Text)
	}

	counts := model.SentimentCounts(theme.Quotes)
	sentimentSummary := fmt.Sprintf("%d positive, %d negative, %d mixed, %d neutral",
		counts[model.SentimentPositive],
		counts[model.SentimentNegative],
		counts[model.SentimentMixed],
		counts[model.SentimentNeutral])

	return fmt.Sprintf(`Write a single executive-ready sentence stating the "%s" theme found in these customer interview quotes.

Topic: %s
Evidence: %d quotes from %d companies (%s), average impact %.1f/5.

Quotes:
%s
Guidelines:
- State the insight, not the process; do not mention quotes, counts, or analysis
- Be specific about what customers value or struggle with
- Neutral, factual tone suitable for an executive report

Respond with ONLY the sentence, no additional formatting or explanation.`,
		strings.ReplaceAll(string(theme.Type), "_", " "),
		theme.Key,
		len(theme.Quotes),
		theme.Metrics.CompanyCount,
		sentimentSummary,
		theme.Metrics.MeanImpact,
		quotes.String())
}
