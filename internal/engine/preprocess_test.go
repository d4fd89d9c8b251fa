package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saffronhq/saffron/internal/model"
)

func TestFilterVerbatim(t *testing.T) {
	quotes := []model.QuoteRecord{
		{ResponseID: "keep1", Text: "The onboarding team was responsive and thorough."},
		{ResponseID: "short", Text: "Too expensive."},
		{ResponseID: "question", Text: "The renewal pricing seemed fine to everyone, right?"},
		{ResponseID: "hypothetical", Text: "Imagine if the reporting module exported straight to our warehouse."},
		{ResponseID: "speculative", Text: "Would the team have signed without the discount, I wonder."},
		{ResponseID: "keep2", Text: "  We lost three weeks waiting on the SSO integration.  "},
	}

	kept := FilterVerbatim(quotes)
	require.Len(t, kept, 2)
	assert.Equal(t, "keep1", kept[0].ResponseID)
	assert.Equal(t, "keep2", kept[1].ResponseID)
}

func TestFilterVerbatimPrefixesAreCaseInsensitive(t *testing.T) {
	quotes := []model.QuoteRecord{
		{ResponseID: "r1", Text: "IF pricing had been lower we might have stayed."},
		{ResponseID: "r2", Text: "How the rollout went is a long story, honestly."},
	}
	assert.Empty(t, FilterVerbatim(quotes))
}

func TestFilterVerbatimEmpty(t *testing.T) {
	assert.Empty(t, FilterVerbatim(nil))
}
