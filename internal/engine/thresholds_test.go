package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saffronhq/saffron/internal/model"
)

// corpus builds n quotes per company with the given impact.
func corpus(impact int, perCompany int, companies ...string) []model.QuoteRecord {
	var quotes []model.QuoteRecord
	for _, c := range companies {
		for i := 0; i < perCompany; i++ {
			quotes = append(quotes, model.QuoteRecord{Company: c, Impact: impact})
		}
	}
	return quotes
}

func TestComputeThresholds(t *testing.T) {
	tests := []struct {
		name   string
		quotes []model.QuoteRecord
		want   Thresholds
	}{
		{
			name:   "rich corpus keeps base thresholds",
			quotes: corpus(4, 4, "A", "B", "C", "D"),
			want:   Thresholds{MinCompanies: 2, MinQuotes: 3, MinImpact: 3.0},
		},
		{
			name:   "single company relaxes company minimum",
			quotes: corpus(4, 5, "A"),
			want:   Thresholds{MinCompanies: 1, MinQuotes: 3, MinImpact: 3.0},
		},
		{
			name:   "sparse per-company coverage relaxes quote minimum",
			quotes: corpus(4, 2, "A", "B", "C", "D"),
			want:   Thresholds{MinCompanies: 2, MinQuotes: 2, MinImpact: 3.0},
		},
		{
			name:   "low mean impact relaxes impact minimum",
			quotes: corpus(3, 4, "A", "B", "C", "D"),
			want:   Thresholds{MinCompanies: 2, MinQuotes: 3, MinImpact: 2.5},
		},
		{
			name:   "impact minimum never drops below the floor",
			quotes: corpus(1, 4, "A", "B", "C", "D"),
			want:   Thresholds{MinCompanies: 2, MinQuotes: 3, MinImpact: 2.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeThresholds(tt.quotes)
			assert.Equal(t, tt.want.MinCompanies, got.MinCompanies)
			assert.Equal(t, tt.want.MinQuotes, got.MinQuotes)
			assert.InDelta(t, tt.want.MinImpact, got.MinImpact, 1e-9)
		})
	}
}
