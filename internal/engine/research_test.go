package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saffronhq/saffron/internal/model"
	"github.com/saffronhq/saffron/internal/questions"
)

const pricingQuestion = "How would you rate our pricing compared to competitors?"

func researchFixture(t *testing.T) (*questions.Mapper, *model.QuestionSet) {
	t.Helper()
	set := questions.Normalize([]string{pricingQuestion})
	require.Len(t, set.Questions, 1)
	return questions.NewMapper(set, questions.DefaultKeywords()), set
}

func mappedTo(question string, quotes ...model.QuoteRecord) map[string]model.QuestionMapping {
	mappings := make(map[string]model.QuestionMapping, len(quotes))
	for _, q := range quotes {
		mappings[q.ResponseID] = model.QuestionMapping{
			ResponseID: q.ResponseID,
			Question:   question,
			Method:     model.MatchExact,
			Confidence: 1,
		}
	}
	return mappings
}

func TestResearchClusterBySentiment(t *testing.T) {
	mapper, set := researchFixture(t)
	thresholds := Thresholds{MinCompanies: 2, MinQuotes: 2, MinImpact: 3}

	quotes := []model.QuoteRecord{
		{ResponseID: "a", Company: "A", Sentiment: model.SentimentPositive, Impact: 4},
		{ResponseID: "b", Company: "B", Sentiment: model.SentimentPositive, Impact: 4},
		{ResponseID: "c", Company: "C", Sentiment: model.SentimentPositive, Impact: 4},
	}

	clusterer := NewResearchClusterer(thresholds, mapper, 3, 0.5)
	clusters := clusterer.Cluster(quotes, mappedTo(pricingQuestion, quotes...), set)
	require.Len(t, clusters, 1)

	assert.Equal(t, model.ThemeStrength, clusters[0].Type)
	assert.Equal(t, pricingQuestion, clusters[0].Key)
	assert.Equal(t, model.OriginResearch, clusters[0].Origin)
	assert.Len(t, clusters[0].Quotes, 3)
}

func TestResearchAugmentationBackfillsThinQuestions(t *testing.T) {
	mapper, set := researchFixture(t)
	thresholds := Thresholds{MinCompanies: 2, MinQuotes: 2, MinImpact: 3}

	mapped := []model.QuoteRecord{
		{ResponseID: "a", Company: "A", Sentiment: model.SentimentPositive, Impact: 4},
		{ResponseID: "b", Company: "B", Sentiment: model.SentimentPositive, Impact: 4},
	}
	relevant := model.QuoteRecord{
		ResponseID: "c", Company: "C", Sentiment: model.SentimentPositive, Impact: 4,
		Text: "Their pricing was much better than every competitor we evaluated",
	}
	unrelated := model.QuoteRecord{
		ResponseID: "d", Company: "D", Sentiment: model.SentimentPositive, Impact: 4,
		Text: "The support team was friendly",
	}
	all := append(append([]model.QuoteRecord{}, mapped...), relevant, unrelated)

	clusterer := NewResearchClusterer(thresholds, mapper, 3, 0.5)
	clusters := clusterer.Cluster(all, mappedTo(pricingQuestion, mapped...), set)
	require.Len(t, clusters, 1)

	ids := clusters[0].ResponseIDs()
	assert.Contains(t, ids, "c", "relevant unmapped quote should be pulled in")
	assert.NotContains(t, ids, "d", "unrelated quote must stay out")
	assert.Len(t, ids, 3)
}

func TestResearchAugmentationStopsAtFloor(t *testing.T) {
	mapper, set := researchFixture(t)
	thresholds := Thresholds{MinCompanies: 2, MinQuotes: 2, MinImpact: 3}

	mapped := []model.QuoteRecord{
		{ResponseID: "a", Company: "A", Sentiment: model.SentimentPositive, Impact: 4},
		{ResponseID: "b", Company: "B", Sentiment: model.SentimentPositive, Impact: 4},
		{ResponseID: "c", Company: "C", Sentiment: model.SentimentPositive, Impact: 4},
	}
	extra := model.QuoteRecord{
		ResponseID: "x", Company: "X", Sentiment: model.SentimentPositive, Impact: 4,
		Text: "Their pricing was much better than every competitor we evaluated",
	}
	all := append(append([]model.QuoteRecord{}, mapped...), extra)

	// The question already meets the floor, so the relevant unmapped quote
	// is not pulled in.
	clusterer := NewResearchClusterer(thresholds, mapper, 3, 0.5)
	clusters := clusterer.Cluster(all, mappedTo(pricingQuestion, mapped...), set)
	require.Len(t, clusters, 1)
	assert.NotContains(t, clusters[0].ResponseIDs(), "x")
}

func TestResearchAggregateFallback(t *testing.T) {
	mapper, set := researchFixture(t)
	thresholds := Thresholds{MinCompanies: 2, MinQuotes: 2, MinImpact: 2.5}

	// No sentiment cohort qualifies alone, but the aggregate does.
	quotes := []model.QuoteRecord{
		{ResponseID: "a", Company: "A", Sentiment: model.SentimentPositive, Impact: 3},
		{ResponseID: "b", Company: "B", Sentiment: model.SentimentNegative, Impact: 3},
	}

	clusterer := NewResearchClusterer(thresholds, mapper, 2, 0.5)
	clusters := clusterer.Cluster(quotes, mappedTo(pricingQuestion, quotes...), set)
	require.Len(t, clusters, 1)

	assert.Equal(t, model.ThemeInvestigation, clusters[0].Type)
	assert.Len(t, clusters[0].Quotes, 2)
}

func TestResearchGuardrails(t *testing.T) {
	mapper, set := researchFixture(t)
	thresholds := Thresholds{MinCompanies: 2, MinQuotes: 2, MinImpact: 3}

	// All evidence from one company never qualifies.
	quotes := []model.QuoteRecord{
		{ResponseID: "a", Company: "A", Sentiment: model.SentimentPositive, Impact: 5},
		{ResponseID: "b", Company: "A", Sentiment: model.SentimentPositive, Impact: 5},
		{ResponseID: "c", Company: "A", Sentiment: model.SentimentPositive, Impact: 5},
	}

	clusterer := NewResearchClusterer(thresholds, mapper, 3, 0.5)
	clusters := clusterer.Cluster(quotes, mappedTo(pricingQuestion, quotes...), set)
	assert.Empty(t, clusters)
}

func TestResearchEmptyGuide(t *testing.T) {
	mapper, _ := researchFixture(t)
	empty := questions.Normalize(nil)

	clusterer := NewResearchClusterer(Thresholds{}, mapper, 8, 0.6)
	assert.Nil(t, clusterer.Cluster([]model.QuoteRecord{{ResponseID: "a"}}, nil, empty))
}
