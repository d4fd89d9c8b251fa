// Package model defines the core domain types for theme discovery.
package model

import "strings"

// Sentiment classifies the emotional polarity of a quote.
type Sentiment string

// Sentiment values applied by the upstream labeling step.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
	SentimentMixed    Sentiment = "mixed"
)

// ParseSentiment normalizes a raw sentiment label. Unrecognized values
// normalize to neutral rather than propagating.
func ParseSentiment(raw string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(raw))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	case SentimentMixed:
		return SentimentMixed
	default:
		return SentimentNeutral
	}
}

// DealOutcome records how the interviewee's deal concluded.
type DealOutcome string

// Deal outcome values.
const (
	DealWon   DealOutcome = "won"
	DealLost  DealOutcome = "lost"
	DealOther DealOutcome = "other"
)

// ParseDealOutcome normalizes a raw deal outcome label.
func ParseDealOutcome(raw string) DealOutcome {
	switch DealOutcome(strings.ToLower(strings.TrimSpace(raw))) {
	case DealWon:
		return DealWon
	case DealLost:
		return DealLost
	default:
		return DealOther
	}
}

// ClampImpact forces an impact score into the valid [1,5] range.
func ClampImpact(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

// QuoteRecord is a single labeled interview excerpt. Identity is ResponseID;
// records are read-only within the discovery engine.
type QuoteRecord struct {
	ResponseID  string
	Text        string
	Subject     string // harmonized category label
	Sentiment   Sentiment
	Impact      int // 1-5
	Company     string
	DealOutcome DealOutcome
	Interviewee string
	RawQuestion string // question text as captured in the interview
}

// Normalize enforces the record invariants: impact in [1,5], sentiment and
// deal outcome limited to their enumerated values.
func (q *QuoteRecord) Normalize() {
	q.Impact = ClampImpact(q.Impact)
	q.Sentiment = ParseSentiment(string(q.Sentiment))
	q.DealOutcome = ParseDealOutcome(string(q.DealOutcome))
}

// UniqueCompanies counts distinct company names across quotes.
func UniqueCompanies(quotes []QuoteRecord) int {
	seen := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		seen[q.Company] = struct{}{}
	}
	return len(seen)
}

// MeanImpact returns the average impact score, or 0 for an empty set.
func MeanImpact(quotes []QuoteRecord) float64 {
	if len(quotes) == 0 {
		return 0
	}
	total := 0
	for _, q := range quotes {
		total += q.Impact
	}
	return float64(total) / float64(len(quotes))
}

// DedupeByCompany restricts a quote set to at most one quote per company,
// keeping the highest-impact quote for each. Input order is preserved for
// the surviving quotes. The result is never larger than the input.
func DedupeByCompany(quotes []QuoteRecord) []QuoteRecord {
	best := make(map[string]int, len(quotes)) // company -> index into quotes
	order := make([]string, 0, len(quotes))

	for i, q := range quotes {
		if prev, ok := best[q.Company]; ok {
			if q.Impact > quotes[prev].Impact {
				best[q.Company] = i
			}
			continue
		}
		best[q.Company] = i
		order = append(order, q.Company)
	}

	out := make([]QuoteRecord, 0, len(order))
	for _, company := range order {
		out = append(out, quotes[best[company]])
	}
	return out
}

// SentimentCounts tallies quotes per sentiment value.
func SentimentCounts(quotes []QuoteRecord) map[Sentiment]int {
	counts := make(map[Sentiment]int, 4)
	for _, q := range quotes {
		counts[q.Sentiment]++
	}
	return counts
}
