package engine

import (
	"log/slog"

	"github.com/saffronhq/saffron/internal/model"
)

// GateEngine validates candidate clusters against four sequential quality
// gates. Gate failures are expected and frequent; a failed cluster is dropped
// silently, never retried.
type GateEngine struct {
	thresholds     Thresholds
	coherenceFloor float64
}

// NewGateEngine creates a gate engine with the given thresholds and narrative
// coherence floor.
func NewGateEngine(thresholds Thresholds, coherenceFloor float64) *GateEngine {
	return &GateEngine{thresholds: thresholds, coherenceFloor: coherenceFloor}
}

// Validate runs the gates in strict order, short-circuiting on the first
// failure. A cluster passing all applicable gates becomes a ValidatedTheme
// carrying the metrics computed along the way.
func (g *GateEngine) Validate(cluster *model.ThemeCluster) (*model.ValidatedTheme, bool) {
	if cluster == nil || len(cluster.Quotes) == 0 {
		return nil, false
	}

	// Gate 1: cross-company corroboration over the unfiltered member set.
	companyCount := model.UniqueCompanies(cluster.Quotes)
	if companyCount < g.thresholds.MinCompanies {
		g.reject(cluster, "cross_company", companyCount)
		return nil, false
	}

	// Gate 2: evidence significance after one-per-company deduplication.
	effective := model.DedupeByCompany(cluster.Quotes)
	if len(effective) < g.thresholds.MinQuotes {
		g.reject(cluster, "evidence_significance", len(effective))
		return nil, false
	}

	// Gate 3: mean impact over the unfiltered member set.
	meanImpact := model.MeanImpact(cluster.Quotes)
	if meanImpact < g.thresholds.MinImpact {
		g.reject(cluster, "impact_threshold", meanImpact)
		return nil, false
	}

	// Gate 4: narrative coherence, only for strength/weakness themes.
	var coherence *float64
	if cluster.Type == model.ThemeStrength || cluster.Type == model.ThemeWeakness {
		fraction := sentimentCoherence(cluster.Quotes, cluster.Type)
		if fraction < g.coherenceFloor {
			g.reject(cluster, "narrative_coherence", fraction)
			return nil, false
		}
		coherence = &fraction
	}

	return &model.ValidatedTheme{
		ThemeCluster: *cluster,
		Metrics: model.ValidationMetrics{
			CompanyCount:    companyCount,
			EffectiveQuotes: len(effective),
			MeanImpact:      meanImpact,
			Coherence:       coherence,
		},
		Distribution: model.NewCompanyDistribution(cluster.Quotes),
	}, true
}

func (g *GateEngine) reject(cluster *model.ThemeCluster, gate string, measured any) {
	slog.Debug("cluster rejected by quality gate",
		"gate", gate,
		"theme_type", cluster.Type,
		"key", cluster.Key,
		"measured", measured)
}

// sentimentCoherence returns the fraction of members whose sentiment matches
// the theme type's expected sentiment.
func sentimentCoherence(quotes []model.QuoteRecord, themeType model.ThemeType) float64 {
	if len(quotes) == 0 {
		return 0
	}
	expected := themeType.ExpectedSentiment()
	matching := 0
	for _, q := range quotes {
		if q.Sentiment == expected {
			matching++
		}
	}
	return float64(matching) / float64(len(quotes))
}
