package engine

import (
	"math"

	"github.com/saffronhq/saffron/internal/model"
)

// ScoreWeights are the maximum contributions of each quality component. The
// defaults deliberately favor breadth of corroborating companies over raw
// quote volume.
type ScoreWeights struct {
	Coverage  float64 // unique-company coverage
	Evidence  float64 // mean impact
	Volume    float64 // effective quote count
	Coherence float64 // sentiment coherence or diversity
}

// DefaultScoreWeights returns the stock 4.5/2.5/2.0/1.0 weighting.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Coverage:  4.5,
		Evidence:  2.5,
		Volume:    2.0,
		Coherence: 1.0,
	}
}

// Saturation points: component contributions max out at these counts.
const (
	coverageSaturation = 4  // companies
	volumeSaturation   = 10 // effective quotes
)

// Scorer computes composite quality scores for validated clusters.
type Scorer struct {
	weights ScoreWeights
}

// NewScorer creates a scorer with the given weights.
func NewScorer(weights ScoreWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the composite 0-10 quality score over a per-company
// deduplicated quote set, rounded to two decimals. Returns 0 for an empty
// set.
func (s *Scorer) Score(effective []model.QuoteRecord, themeType model.ThemeType) float64 {
	if len(effective) == 0 {
		return 0
	}

	companies := float64(model.UniqueCompanies(effective))
	coverage := math.Min(companies/coverageSaturation, 1) * s.weights.Coverage

	evidence := model.MeanImpact(effective) / 5 * s.weights.Evidence

	volume := math.Min(float64(len(effective))/volumeSaturation, 1) * s.weights.Volume

	var coherence float64
	if themeType.ExpectedSentiment() != "" {
		coherence = sentimentCoherence(effective, themeType) * s.weights.Coherence
	} else {
		diversity := math.Min(float64(len(model.SentimentCounts(effective)))/3, 1)
		coherence = diversity * s.weights.Coherence
	}

	total := coverage + evidence + volume + coherence
	return math.Round(total*100) / 100
}
