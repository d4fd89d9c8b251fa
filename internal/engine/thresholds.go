package engine

import (
	"log/slog"

	"github.com/saffronhq/saffron/internal/model"
)

// Base quality-gate thresholds, relaxed by ComputeThresholds for small or
// sparse corpora.
const (
	baseMinCompanies = 2
	baseMinQuotes    = 3
	baseMinImpact    = 3.0

	sparseMinQuotes    = 2
	minImpactFloor     = 2.5
	sparseImpactCutoff = 3.5
)

// Thresholds are the quality-gate minimums derived from corpus statistics.
type Thresholds struct {
	MinCompanies int
	MinQuotes    int
	MinImpact    float64
}

// ComputeThresholds derives gate strictness from corpus-wide statistics so
// useful themes still surface from small datasets. This trades precision for
// recall when data is scarce.
func ComputeThresholds(quotes []model.QuoteRecord) Thresholds {
	t := Thresholds{
		MinCompanies: baseMinCompanies,
		MinQuotes:    baseMinQuotes,
		MinImpact:    baseMinImpact,
	}

	companies := model.UniqueCompanies(quotes)
	switch {
	case companies == 1:
		t.MinCompanies = 1 // single-company mode
	case companies <= 3:
		t.MinCompanies = 2
	}

	if companies > 0 {
		perCompany := float64(len(quotes)) / float64(companies)
		if perCompany < 3 {
			t.MinQuotes = sparseMinQuotes
		}
	}

	meanImpact := model.MeanImpact(quotes)
	if meanImpact < sparseImpactCutoff {
		t.MinImpact = meanImpact - 0.5
		if t.MinImpact < minImpactFloor {
			t.MinImpact = minImpactFloor
		}
	}

	slog.Debug("computed adaptive thresholds",
		"companies", companies,
		"quotes", len(quotes),
		"mean_impact", meanImpact,
		"min_companies", t.MinCompanies,
		"min_quotes", t.MinQuotes,
		"min_impact", t.MinImpact)

	return t
}
