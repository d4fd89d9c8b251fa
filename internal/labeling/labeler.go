// Package labeling is the upstream orchestration stage that applies
// sentiment and impact labels to imported quotes before the discovery engine
// runs. It batches LLM calls through a fixed-size worker pool and joins all
// results before returning, so the engine never observes a partial corpus.
package labeling

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/saffronhq/saffron/internal/common"
	"github.com/saffronhq/saffron/internal/llm"
	"github.com/saffronhq/saffron/internal/model"
)

// defaultWorkers is the fixed worker-pool size for labeling calls.
const defaultWorkers = 5

// Labeler applies sentiment/impact labels to quotes via an LLM client.
type Labeler struct {
	client  llm.Client
	logger  *slog.Logger
	workers int
}

// NewLabeler creates a labeler with the default worker pool size.
func NewLabeler(client llm.Client, logger *slog.Logger) *Labeler {
	return &Labeler{
		client:  client,
		logger:  logger,
		workers: defaultWorkers,
	}
}

// LabelQuotes labels every quote concurrently with no ordering guarantee on
// completion, then returns the fully collected result in input order. A quote
// whose labeling call fails keeps neutral sentiment and a midpoint impact;
// malformed labels normalize rather than propagate. The progress callback, if
// non-nil, is invoked once per completed quote.
func (l *Labeler) LabelQuotes(ctx context.Context, quotes []model.QuoteRecord, progress func()) ([]model.QuoteRecord, error) {
	if len(quotes) == 0 {
		return nil, nil
	}

	labeled := make([]model.QuoteRecord, len(quotes))
	copy(labeled, quotes)

	sem := make(chan struct{}, l.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for i := range labeled {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if err := l.labelOne(ctx, &labeled[idx]); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				l.logger.Warn("quote labeling failed, using defaults",
					"response_id", labeled[idx].ResponseID,
					"error", err)
				labeled[idx].Sentiment = model.SentimentNeutral
				labeled[idx].Impact = 3
			}

			if progress != nil {
				progress()
			}
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if failures > 0 {
		l.logger.Info("labeling complete with failures",
			"quotes", len(labeled),
			"failures", failures)
	}

	return labeled, nil
}

func (l *Labeler) labelOne(ctx context.Context, quote *model.QuoteRecord) error {
	response, err := l.client.Complete(ctx, buildLabelPrompt(quote))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrLabelingFailed, err)
	}

	parsed, err := llm.ParseLabelResponse(response)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrLabelingFailed, err)
	}

	quote.Sentiment = model.ParseSentiment(parsed.Sentiment)
	quote.Impact = model.ClampImpact(parsed.Impact)
	return nil
}

// buildLabelPrompt creates the sentiment/impact labeling prompt for a quote.
func buildLabelPrompt(quote *model.QuoteRecord) string {
	return fmt.Sprintf(`Label this customer interview quote.

Subject: %s
Quote: %q

Sentiment must be one of: positive, negative, neutral, mixed.
Impact is how consequential this statement is to the buying decision, 1 (trivial) to 5 (decisive).

Respond in this exact format:
SENTIMENT: <positive|negative|neutral|mixed>
IMPACT: <1-5>`,
		quote.Subject,
		quote.Text)
}
