package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saffronhq/saffron/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestQuotesRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	quotes := []model.QuoteRecord{
		{
			ResponseID:  "r1",
			Text:        "The pricing was easy to defend to finance.",
			Subject:     "Pricing",
			Sentiment:   model.SentimentPositive,
			Impact:      4,
			Company:     "Acme",
			DealOutcome: model.DealWon,
			Interviewee: "VP Engineering",
			RawQuestion: "How would you rate our pricing?",
		},
		{
			ResponseID: "r2",
			Text:       "Rollout dragged past the promised date.",
			Subject:    "Implementation",
			Sentiment:  model.SentimentNegative,
			Impact:     5,
			Company:    "Beta Corp",
		},
	}

	require.NoError(t, store.SaveQuotes(ctx, quotes))

	loaded, err := store.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, quotes[0], loaded[0])

	// Unset enum fields come back normalized, not empty.
	assert.Equal(t, model.DealOther, loaded[1].DealOutcome)

	count, err := store.CountQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSaveQuotesUpsertsByResponseID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	original := model.QuoteRecord{
		ResponseID: "r1",
		Text:       "First version of the quote text.",
		Subject:    "Pricing",
		Sentiment:  model.SentimentNeutral,
		Impact:     3,
		Company:    "Acme",
	}
	require.NoError(t, store.SaveQuotes(ctx, []model.QuoteRecord{original}))

	relabeled := original
	relabeled.Sentiment = model.SentimentPositive
	relabeled.Impact = 5
	require.NoError(t, store.SaveQuotes(ctx, []model.QuoteRecord{relabeled}))

	loaded, err := store.ListQuotes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, model.SentimentPositive, loaded[0].Sentiment)
	assert.Equal(t, 5, loaded[0].Impact)
}

func TestQuestionsReplaceSemantics(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := []string{"Question A?", "Question B?"}
	require.NoError(t, store.SaveQuestions(ctx, first))

	second := []string{"Question C?"}
	require.NoError(t, store.SaveQuestions(ctx, second))

	loaded, err := store.ListQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestThemeRoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	coherence := 1.0
	theme := &model.ValidatedTheme{
		ThemeCluster: model.ThemeCluster{
			ID:      uuid.NewString(),
			Type:    model.ThemeStrength,
			Key:     "Pricing",
			Origin:  model.OriginHybrid,
			Pattern: "2 positive quotes about Pricing",
			Quotes: []model.QuoteRecord{
				{ResponseID: "r1", Company: "Acme", Sentiment: model.SentimentPositive, Impact: 4},
				{ResponseID: "r2", Company: "Beta", Sentiment: model.SentimentPositive, Impact: 5},
			},
		},
		Metrics: model.ValidationMetrics{
			CompanyCount:    2,
			EffectiveQuotes: 2,
			MeanImpact:      4.5,
			Coherence:       &coherence,
		},
		Distribution: model.NewCompanyDistribution([]model.QuoteRecord{
			{Company: "Acme"}, {Company: "Beta"},
		}),
		QualityScore: 5.9,
		Statement:    "Customers consistently cite pricing as a strength.",
	}

	require.NoError(t, store.SaveTheme(ctx, theme))

	themes, err := store.ListThemes(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 1)

	got := themes[0]
	assert.Equal(t, theme.ID, got.ID)
	assert.Equal(t, model.ThemeStrength, got.Type)
	assert.Equal(t, "Pricing", got.Key)
	assert.Equal(t, model.OriginHybrid, got.Origin)
	assert.Equal(t, theme.Statement, got.Statement)
	assert.InDelta(t, 5.9, got.QualityScore, 1e-9)
	assert.Equal(t, 2, got.CompanyCount)
	require.NotNil(t, got.Coherence)
	assert.InDelta(t, 1.0, *got.Coherence, 1e-9)
	assert.ElementsMatch(t, []string{"r1", "r2"}, got.ResponseIDs)
}

func TestThemeNilCoherence(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	theme := &model.ValidatedTheme{
		ThemeCluster: model.ThemeCluster{
			ID:     uuid.NewString(),
			Type:   model.ThemeInvestigation,
			Key:    "Support",
			Origin: model.OriginDiscovered,
			Quotes: []model.QuoteRecord{
				{ResponseID: "r1", Company: "Acme", Impact: 3},
			},
		},
		Metrics: model.ValidationMetrics{CompanyCount: 1, EffectiveQuotes: 1, MeanImpact: 3},
	}
	require.NoError(t, store.SaveTheme(ctx, theme))

	themes, err := store.ListThemes(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 1)
	assert.Nil(t, themes[0].Coherence)
}

func TestListThemesOrdersByScore(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	for i, score := range []float64{4.2, 8.8, 6.1} {
		theme := &model.ValidatedTheme{
			ThemeCluster: model.ThemeCluster{
				ID:     uuid.NewString(),
				Type:   model.ThemeStrength,
				Key:    string(rune('A' + i)),
				Origin: model.OriginDiscovered,
				Quotes: []model.QuoteRecord{
					{ResponseID: uuid.NewString(), Company: "Acme", Impact: 4},
				},
			},
			QualityScore: score,
		}
		require.NoError(t, store.SaveTheme(ctx, theme))
	}

	themes, err := store.ListThemes(ctx)
	require.NoError(t, err)
	require.Len(t, themes, 3)
	assert.InDelta(t, 8.8, themes[0].QualityScore, 1e-9)
	assert.InDelta(t, 6.1, themes[1].QualityScore, 1e-9)
	assert.InDelta(t, 4.2, themes[2].QualityScore, 1e-9)
}

func TestClearThemes(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	theme := &model.ValidatedTheme{
		ThemeCluster: model.ThemeCluster{
			ID:     uuid.NewString(),
			Type:   model.ThemeStrength,
			Key:    "Pricing",
			Origin: model.OriginDiscovered,
			Quotes: []model.QuoteRecord{
				{ResponseID: "r1", Company: "Acme", Impact: 4},
			},
		},
	}
	require.NoError(t, store.SaveTheme(ctx, theme))
	require.NoError(t, store.ClearThemes(ctx))

	themes, err := store.ListThemes(ctx)
	require.NoError(t, err)
	assert.Empty(t, themes)
}
