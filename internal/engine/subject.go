package engine

import (
	"fmt"
	"sort"

	"github.com/saffronhq/saffron/internal/model"
)

// SubjectClusterer groups quotes by harmonized subject and splits each
// subject's quotes into sentiment/outcome cohorts, each a candidate theme.
type SubjectClusterer struct {
	thresholds Thresholds
}

// NewSubjectClusterer creates a subject clusterer with the given thresholds.
func NewSubjectClusterer(thresholds Thresholds) *SubjectClusterer {
	return &SubjectClusterer{thresholds: thresholds}
}

// Cluster produces up to five candidate theme types per subject. Strength
// and weakness prefer the won/lost-qualified subset when it alone meets the
// quote minimum, falling back to the broader sentiment pool otherwise.
func (s *SubjectClusterer) Cluster(quotes []model.QuoteRecord) []*model.ThemeCluster {
	bySubject := make(map[string][]model.QuoteRecord)
	var subjects []string
	for _, q := range quotes {
		if _, seen := bySubject[q.Subject]; !seen {
			subjects = append(subjects, q.Subject)
		}
		bySubject[q.Subject] = append(bySubject[q.Subject], q)
	}
	sort.Strings(subjects)

	var clusters []*model.ThemeCluster
	for _, subject := range subjects {
		clusters = append(clusters, s.clusterSubject(subject, bySubject[subject])...)
	}
	return clusters
}

func (s *SubjectClusterer) clusterSubject(subject string, quotes []model.QuoteRecord) []*model.ThemeCluster {
	minQuotes := s.thresholds.MinQuotes

	positive := filterSentiment(quotes, model.SentimentPositive)
	negative := filterSentiment(quotes, model.SentimentNegative)
	unclear := append(filterSentiment(quotes, model.SentimentMixed),
		filterSentiment(quotes, model.SentimentNeutral)...)

	var clusters []*model.ThemeCluster

	// Strength: positive quotes, preferring those tied to won deals.
	if pool, fromWon := preferOutcome(positive, model.DealWon, minQuotes); len(pool) >= minQuotes {
		pattern := fmt.Sprintf("%d positive quotes about %s", len(pool), subject)
		if fromWon {
			pattern += " from won deals"
		}
		clusters = append(clusters, model.NewThemeCluster(model.ThemeStrength, subject, model.OriginDiscovered, pool, pattern))
	}

	// Weakness: negative quotes, preferring those tied to lost deals.
	if pool, fromLost := preferOutcome(negative, model.DealLost, minQuotes); len(pool) >= minQuotes {
		pattern := fmt.Sprintf("%d negative quotes about %s", len(pool), subject)
		if fromLost {
			pattern += " from lost deals"
		}
		clusters = append(clusters, model.NewThemeCluster(model.ThemeWeakness, subject, model.OriginDiscovered, pool, pattern))
	}

	// Opportunity: positive sentiment on lost deals signals unmet potential.
	if pool := filterOutcome(positive, model.DealLost); len(pool) >= minQuotes {
		pattern := fmt.Sprintf("%d positive quotes about %s despite lost deals", len(pool), subject)
		clusters = append(clusters, model.NewThemeCluster(model.ThemeOpportunity, subject, model.OriginDiscovered, pool, pattern))
	}

	// Concern: negative sentiment on won deals signals latent risk.
	if pool := filterOutcome(negative, model.DealWon); len(pool) >= minQuotes {
		pattern := fmt.Sprintf("%d negative quotes about %s despite won deals", len(pool), subject)
		clusters = append(clusters, model.NewThemeCluster(model.ThemeConcern, subject, model.OriginDiscovered, pool, pattern))
	}

	// Investigation: mixed/neutral quotes, or the whole subject when it is
	// large and sentiment is split, so a cluster surfaces even without a
	// clean cohort.
	if len(unclear) >= minQuotes {
		pattern := fmt.Sprintf("%d mixed or neutral quotes about %s", len(unclear), subject)
		clusters = append(clusters, model.NewThemeCluster(model.ThemeInvestigation, subject, model.OriginDiscovered, unclear, pattern))
	} else if len(quotes) > 5 && len(model.SentimentCounts(quotes)) >= 2 {
		pattern := fmt.Sprintf("%d quotes about %s with split sentiment", len(quotes), subject)
		clusters = append(clusters, model.NewThemeCluster(model.ThemeInvestigation, subject, model.OriginDiscovered, quotes, pattern))
	}

	return clusters
}

// preferOutcome returns the outcome-qualified subset when it alone meets the
// minimum, else the full pool. The second return reports which was chosen.
func preferOutcome(quotes []model.QuoteRecord, outcome model.DealOutcome, minQuotes int) ([]model.QuoteRecord, bool) {
	qualified := filterOutcome(quotes, outcome)
	if len(qualified) >= minQuotes {
		return qualified, true
	}
	return quotes, false
}

func filterSentiment(quotes []model.QuoteRecord, sentiment model.Sentiment) []model.QuoteRecord {
	var out []model.QuoteRecord
	for _, q := range quotes {
		if q.Sentiment == sentiment {
			out = append(out, q)
		}
	}
	return out
}

func filterOutcome(quotes []model.QuoteRecord, outcome model.DealOutcome) []model.QuoteRecord {
	var out []model.QuoteRecord
	for _, q := range quotes {
		if q.DealOutcome == outcome {
			out = append(out, q)
		}
	}
	return out
}
