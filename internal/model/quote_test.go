package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Sentiment
	}{
		{name: "positive", input: "positive", want: SentimentPositive},
		{name: "uppercase", input: "NEGATIVE", want: SentimentNegative},
		{name: "padded", input: "  mixed  ", want: SentimentMixed},
		{name: "unknown normalizes to neutral", input: "enthusiastic", want: SentimentNeutral},
		{name: "empty normalizes to neutral", input: "", want: SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSentiment(tt.input))
		})
	}
}

func TestClampImpact(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{name: "below range", input: 0, want: 1},
		{name: "negative", input: -7, want: 1},
		{name: "in range", input: 3, want: 3},
		{name: "above range", input: 9, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampImpact(tt.input))
		})
	}
}

func TestQuoteRecordNormalize(t *testing.T) {
	q := QuoteRecord{
		ResponseID:  "r1",
		Text:        "The rollout took two weeks longer than promised.",
		Sentiment:   Sentiment("FURIOUS"),
		Impact:      42,
		DealOutcome: DealOutcome("churned"),
	}
	q.Normalize()

	assert.Equal(t, SentimentNeutral, q.Sentiment)
	assert.Equal(t, 5, q.Impact)
	assert.Equal(t, DealOther, q.DealOutcome)
}

func TestDedupeByCompany(t *testing.T) {
	quotes := []QuoteRecord{
		{ResponseID: "r1", Company: "Acme", Impact: 3},
		{ResponseID: "r2", Company: "Beta", Impact: 2},
		{ResponseID: "r3", Company: "Acme", Impact: 5},
		{ResponseID: "r4", Company: "Gamma", Impact: 4},
		{ResponseID: "r5", Company: "Beta", Impact: 2},
	}

	deduped := DedupeByCompany(quotes)
	require.Len(t, deduped, 3)

	// Highest impact survives per company; first-seen company order holds.
	assert.Equal(t, "r3", deduped[0].ResponseID)
	assert.Equal(t, "r2", deduped[1].ResponseID)
	assert.Equal(t, "r4", deduped[2].ResponseID)
}

func TestDedupeByCompanyNeverIncreases(t *testing.T) {
	tests := []struct {
		name   string
		quotes []QuoteRecord
	}{
		{name: "empty", quotes: nil},
		{name: "single", quotes: []QuoteRecord{{ResponseID: "r1", Company: "Acme"}}},
		{
			name: "all same company",
			quotes: []QuoteRecord{
				{ResponseID: "r1", Company: "Acme", Impact: 1},
				{ResponseID: "r2", Company: "Acme", Impact: 2},
				{ResponseID: "r3", Company: "Acme", Impact: 3},
			},
		},
		{
			name: "all distinct companies",
			quotes: []QuoteRecord{
				{ResponseID: "r1", Company: "A"},
				{ResponseID: "r2", Company: "B"},
				{ResponseID: "r3", Company: "C"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deduped := DedupeByCompany(tt.quotes)
			assert.LessOrEqual(t, len(deduped), len(tt.quotes))
			assert.Equal(t, UniqueCompanies(tt.quotes), len(deduped))
		})
	}
}

func TestMeanImpact(t *testing.T) {
	assert.Zero(t, MeanImpact(nil))

	quotes := []QuoteRecord{
		{Impact: 4}, {Impact: 5}, {Impact: 3},
	}
	assert.InDelta(t, 4.0, MeanImpact(quotes), 1e-9)
}

func TestSentimentCounts(t *testing.T) {
	quotes := []QuoteRecord{
		{Sentiment: SentimentPositive},
		{Sentiment: SentimentPositive},
		{Sentiment: SentimentNegative},
		{Sentiment: SentimentMixed},
	}
	counts := SentimentCounts(quotes)
	assert.Equal(t, 2, counts[SentimentPositive])
	assert.Equal(t, 1, counts[SentimentNegative])
	assert.Equal(t, 1, counts[SentimentMixed])
	assert.Zero(t, counts[SentimentNeutral])
}
