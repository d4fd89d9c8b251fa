package model

import (
	"github.com/google/uuid"
)

// ThemeType classifies the insight a cluster represents.
type ThemeType string

// Theme types.
const (
	ThemeStrength      ThemeType = "strength"
	ThemeWeakness      ThemeType = "weakness"
	ThemeOpportunity   ThemeType = "opportunity"
	ThemeConcern       ThemeType = "concern"
	ThemeInvestigation ThemeType = "investigation_needed"
)

// ExpectedSentiment returns the sentiment a coherent quote should carry for
// this theme type. Only strength and weakness themes expect one sentiment;
// all other types return "".
func (t ThemeType) ExpectedSentiment() Sentiment {
	switch t {
	case ThemeStrength:
		return SentimentPositive
	case ThemeWeakness:
		return SentimentNegative
	default:
		return ""
	}
}

// Origin records the provenance of a theme.
type Origin string

// Theme origins.
const (
	OriginDiscovered Origin = "discovered" // subject-driven
	OriginResearch   Origin = "research"   // question-driven
	OriginHybrid     Origin = "hybrid"     // merged from both paths
)

// ThemeCluster is a candidate theme: a set of corroborating quotes grouped
// under one key. Mutable only during merging.
type ThemeCluster struct {
	ID      string
	Type    ThemeType
	Key     string // harmonized subject or canonical question
	Origin  Origin
	Quotes  []QuoteRecord
	Pattern string // free-text pattern summary
}

// NewThemeCluster creates a candidate cluster, deduplicating members by
// response id.
func NewThemeCluster(themeType ThemeType, key string, origin Origin, quotes []QuoteRecord, pattern string) *ThemeCluster {
	c := &ThemeCluster{
		ID:      uuid.NewString(),
		Type:    themeType,
		Key:     key,
		Origin:  origin,
		Pattern: pattern,
	}
	c.AddQuotes(quotes...)
	return c
}

// ResponseIDs returns the set of member response ids.
func (c *ThemeCluster) ResponseIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.Quotes))
	for _, q := range c.Quotes {
		ids[q.ResponseID] = struct{}{}
	}
	return ids
}

// AddQuotes appends quotes, skipping any response id already present.
func (c *ThemeCluster) AddQuotes(quotes ...QuoteRecord) {
	ids := c.ResponseIDs()
	for _, q := range quotes {
		if _, ok := ids[q.ResponseID]; ok {
			continue
		}
		ids[q.ResponseID] = struct{}{}
		c.Quotes = append(c.Quotes, q)
	}
}

// ValidationMetrics carries the measurements computed by the quality gates.
type ValidationMetrics struct {
	CompanyCount    int      // unique companies, unfiltered
	EffectiveQuotes int      // one-per-company, highest impact
	MeanImpact      float64  // over the unfiltered member set
	Coherence       *float64 // nil for theme types without an expected sentiment
}

// CompanyDistribution summarizes how evidence spreads across companies.
type CompanyDistribution struct {
	Counts       map[string]int
	MaxShare     float64 // largest single-company share, 0-1
	BalanceScore float64 // 1 - MaxShare; higher is more balanced
	Biased       bool    // one company holds more than 60% of quotes
}

// NewCompanyDistribution computes the distribution for a quote set.
func NewCompanyDistribution(quotes []QuoteRecord) CompanyDistribution {
	dist := CompanyDistribution{Counts: make(map[string]int)}
	if len(quotes) == 0 {
		return dist
	}
	for _, q := range quotes {
		dist.Counts[q.Company]++
	}
	maxCount := 0
	for _, n := range dist.Counts {
		if n > maxCount {
			maxCount = n
		}
	}
	dist.MaxShare = float64(maxCount) / float64(len(quotes))
	dist.BalanceScore = 1 - dist.MaxShare
	dist.Biased = dist.MaxShare > 0.6
	return dist
}

// ValidatedTheme is a cluster that passed all quality gates, augmented with
// validation metrics and a generated statement. Not mutated after creation.
type ValidatedTheme struct {
	ThemeCluster
	Metrics      ValidationMetrics
	Distribution CompanyDistribution
	QualityScore float64 // composite, 0-10
	Statement    string
}

// EffectiveQuotes returns the per-company-deduplicated member set used for
// scoring.
func (t *ValidatedTheme) EffectiveQuotes() []QuoteRecord {
	return DedupeByCompany(t.Quotes)
}
