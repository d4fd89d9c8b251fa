package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/saffronhq/saffron/internal/model"
	"github.com/saffronhq/saffron/internal/questions"
)

// Config holds the tunable parameters of the discovery pipeline. The
// defaults are the calibrated production values; they are configuration, not
// invariants.
type Config struct {
	Keywords        questions.Keywords
	Weights         ScoreWeights
	MergeThreshold  float64 // member-overlap Jaccard required to merge
	CoherenceFloor  float64 // narrative coherence gate minimum
	AugmentFloor    int     // research question backfill target
	AugmentMinScore float64 // lowest fuzzy score accepted during backfill
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Keywords:        questions.DefaultKeywords(),
		Weights:         DefaultScoreWeights(),
		MergeThreshold:  0.6,
		CoherenceFloor:  0.7,
		AugmentFloor:    8,
		AugmentMinScore: 0.6,
	}
}

// RunStats counts what each stage did, returned as a value from each run so
// the core holds no shared mutable state across invocations.
type RunStats struct {
	InputQuotes        int
	VerbatimQuotes     int
	MappedQuotes       int
	SubjectClusters    int
	ResearchClusters   int
	MergedClusters     int
	ValidatedThemes    int
	StatementFallbacks int
	PersistFailures    int
}

// Result is the output of one discovery run.
type Result struct {
	Themes []*model.ValidatedTheme
	Stats  RunStats
}

// DiscoveryEngine orchestrates the theme discovery pipeline: preprocess,
// map, cluster along both paths, merge, gate, score, narrate, persist. The
// pipeline itself is synchronous and pure over its in-memory inputs; only
// the two collaborators perform I/O, and neither can fail the run.
type DiscoveryEngine struct {
	store     ThemeStore         // optional; nil skips persistence
	generator StatementGenerator // optional; nil always uses the fallback template
	config    Config
}

// New creates a discovery engine with default configuration.
func New(store ThemeStore, generator StatementGenerator) *DiscoveryEngine {
	return NewWithConfig(store, generator, DefaultConfig())
}

// NewWithConfig creates a discovery engine with custom configuration.
func NewWithConfig(store ThemeStore, generator StatementGenerator, config Config) *DiscoveryEngine {
	return &DiscoveryEngine{
		store:     store,
		generator: generator,
		config:    config,
	}
}

// Run executes the full pipeline over one client's quote corpus. An empty or
// degenerate corpus yields an empty result set, never an error; the worst
// outcome of a run is zero themes, which is a valid observable result.
func (e *DiscoveryEngine) Run(ctx context.Context, quotes []model.QuoteRecord, guideQuestions []string) (*Result, error) {
	result := &Result{Stats: RunStats{InputQuotes: len(quotes)}}

	normalized := make([]model.QuoteRecord, len(quotes))
	copy(normalized, quotes)
	for i := range normalized {
		normalized[i].Normalize()
	}

	verbatim := FilterVerbatim(normalized)
	result.Stats.VerbatimQuotes = len(verbatim)
	if len(verbatim) == 0 {
		slog.Info("no verbatim quotes to analyze")
		return result, nil
	}

	thresholds := ComputeThresholds(verbatim)

	questionSet := questions.Normalize(guideQuestions)
	mapper := questions.NewMapper(questionSet, e.config.Keywords)

	mappings := make(map[string]model.QuestionMapping, len(verbatim))
	for _, q := range verbatim {
		m := mapper.MapQuote(q)
		mappings[q.ResponseID] = m
		if m.Mapped() {
			result.Stats.MappedQuotes++
		}
	}

	subjectClusters := NewSubjectClusterer(thresholds).Cluster(verbatim)
	result.Stats.SubjectClusters = len(subjectClusters)

	researchClusters := NewResearchClusterer(thresholds, mapper, e.config.AugmentFloor, e.config.AugmentMinScore).
		Cluster(verbatim, mappings, questionSet)
	result.Stats.ResearchClusters = len(researchClusters)

	candidates := append(subjectClusters, researchClusters...)
	merged := MergeAll(candidates, e.config.MergeThreshold)
	result.Stats.MergedClusters = len(merged)

	gates := NewGateEngine(thresholds, e.config.CoherenceFloor)
	scorer := NewScorer(e.config.Weights)

	for _, cluster := range merged {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		theme, ok := gates.Validate(cluster)
		if !ok {
			continue
		}
		theme.QualityScore = scorer.Score(theme.EffectiveQuotes(), theme.Type)

		theme.Statement = e.narrate(ctx, theme, &result.Stats)

		if e.store != nil {
			if err := e.store.SaveTheme(ctx, theme); err != nil {
				result.Stats.PersistFailures++
				slog.Error("failed to persist theme",
					"theme_type", theme.Type,
					"key", theme.Key,
					"error", err)
			}
		}

		result.Themes = append(result.Themes, theme)
	}

	sort.SliceStable(result.Themes, func(i, j int) bool {
		return result.Themes[i].QualityScore > result.Themes[j].QualityScore
	})
	result.Stats.ValidatedThemes = len(result.Themes)

	slog.Info("discovery run complete",
		"input_quotes", result.Stats.InputQuotes,
		"verbatim_quotes", result.Stats.VerbatimQuotes,
		"candidate_clusters", len(candidates),
		"validated_themes", result.Stats.ValidatedThemes)

	return result, nil
}

// narrate asks the statement generator for prose, substituting the
// deterministic fallback template on any failure.
func (e *DiscoveryEngine) narrate(ctx context.Context, theme *model.ValidatedTheme, stats *RunStats) string {
	if e.generator != nil {
		statement, err := e.generator.GenerateStatement(ctx, theme)
		if err == nil && strings.TrimSpace(statement) != "" {
			return statement
		}
		if err != nil {
			slog.Warn("statement generation failed, using fallback",
				"theme_type", theme.Type,
				"key", theme.Key,
				"error", err)
		}
	}
	stats.StatementFallbacks++
	return FallbackStatement(theme)
}

// FallbackStatement builds a deterministic templated sentence from the theme
// type, key, sentiment distribution, and mean impact. Used whenever the
// statement generator is unavailable or fails.
func FallbackStatement(theme *model.ValidatedTheme) string {
	counts := model.SentimentCounts(theme.Quotes)
	var parts []string
	for _, s := range []model.Sentiment{model.SentimentPositive, model.SentimentNegative, model.SentimentMixed, model.SentimentNeutral} {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}

	label := strings.ReplaceAll(string(theme.Type), "_", " ")
	return fmt.Sprintf("%s: %s - %d quotes across %d companies (%s; avg impact %.1f/5)",
		strings.ToUpper(label[:1])+label[1:],
		theme.Key,
		len(theme.Quotes),
		theme.Metrics.CompanyCount,
		strings.Join(parts, ", "),
		theme.Metrics.MeanImpact)
}
