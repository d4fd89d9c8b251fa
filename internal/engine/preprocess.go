// Package engine implements the theme discovery, quality-gating, and
// deduplication pipeline over labeled interview quotes.
package engine

import (
	"log/slog"
	"strings"

	"github.com/saffronhq/saffron/internal/model"
)

// minVerbatimLength is the shortest quote worth clustering.
const minVerbatimLength = 20

// hypotheticalPrefixes mark interviewer prompts and speculation rather than
// verbatim customer statements.
var hypotheticalPrefixes = []string{
	"if ",
	"would ",
	"how ",
	"what if",
	"do you think",
	"could you",
	"let's say",
	"imagine if",
	"suppose",
}

// FilterVerbatim removes non-verbatim content: hypotheticals, questions, and
// fragments too short to corroborate a theme. Deterministic; removal counts
// are logged for transparency.
func FilterVerbatim(quotes []model.QuoteRecord) []model.QuoteRecord {
	kept := make([]model.QuoteRecord, 0, len(quotes))
	hypothetical, short := 0, 0

	for _, q := range quotes {
		text := strings.TrimSpace(q.Text)
		if len(text) < minVerbatimLength {
			short++
			continue
		}
		if isHypothetical(text) {
			hypothetical++
			continue
		}
		kept = append(kept, q)
	}

	if hypothetical > 0 || short > 0 {
		slog.Info("filtered non-verbatim quotes",
			"input", len(quotes),
			"kept", len(kept),
			"hypothetical", hypothetical,
			"too_short", short)
	}

	return kept
}

func isHypothetical(text string) bool {
	if strings.HasSuffix(text, "?") {
		return true
	}
	lower := strings.ToLower(text)
	for _, prefix := range hypotheticalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
