package questions

import (
	"strings"

	"github.com/saffronhq/saffron/internal/model"
)

// Matching thresholds. The introduction question is lexically generic and
// attracts unrelated short questions, so it carries stricter thresholds than
// every other category.
const (
	exactConfidence  = 1.0
	prefixConfidence = 0.9
	fuzzyAccept      = 0.5
	fuzzyFallback    = 0.35
	introFuzzyAccept = 0.8
	prefixTokenCount = 6
)

// Mapper resolves raw captured questions to canonical research questions.
// It is a pure function over its inputs; all lookup structures are built at
// construction.
type Mapper struct {
	set        *model.QuestionSet
	kw         Keywords
	normalized []string
	tokens     []map[string]struct{}
	prefixes   []string
	introIdx   int // index of the self-introduction question, -1 if absent
}

// NewMapper builds a mapper over a normalized question set.
func NewMapper(set *model.QuestionSet, kw Keywords) *Mapper {
	m := &Mapper{
		set:      set,
		kw:       kw,
		introIdx: -1,
	}
	for i, q := range set.Questions {
		norm := NormalizeKey(q)
		m.normalized = append(m.normalized, norm)
		m.tokens = append(m.tokens, ContentTokens(q))
		m.prefixes = append(m.prefixes, tokenPrefix(norm, prefixTokenCount))
		if m.introIdx < 0 && containsAny(norm, kw.IntroCues) {
			m.introIdx = i
		}
	}
	return m
}

// MapQuote resolves the mapping for one quote's captured question.
func (m *Mapper) MapQuote(q model.QuoteRecord) model.QuestionMapping {
	question, method, confidence := m.Map(q.RawQuestion)
	return model.QuestionMapping{
		ResponseID: q.ResponseID,
		Question:   question,
		Method:     method,
		Confidence: confidence,
	}
}

// Map resolves a raw captured question to a canonical question, the method
// used, and a confidence in [0,1]. Tiers are evaluated in order; the first
// match wins. An empty question with MatchNone means no canonical question
// cleared any threshold.
func (m *Mapper) Map(raw string) (string, model.MatchMethod, float64) {
	if m.set.Empty() || strings.TrimSpace(raw) == "" {
		return "", model.MatchNone, 0
	}

	norm := NormalizeKey(raw)

	// Tier 1: exact normalized match.
	for i, n := range m.normalized {
		if norm == n {
			return m.set.Questions[i], model.MatchExact, exactConfidence
		}
	}

	// Tier 2: hand-authored anchor rules for recurring ambiguous categories.
	if idx, conf, ok := m.anchorMatch(norm); ok {
		return m.set.Questions[idx], model.MatchAnchor, conf
	}

	// Tier 3: leading-token prefix heuristic.
	if idx, ok := m.prefixMatch(norm); ok {
		return m.set.Questions[idx], model.MatchPrefix, prefixConfidence
	}

	// Tier 4: stopword-filtered fuzzy token overlap.
	if idx, score, ok := m.fuzzyMatch(raw, norm); ok {
		return m.set.Questions[idx], model.MatchFuzzy, score
	}

	return "", model.MatchNone, 0
}

// anchorRule pairs cue requirements with a target-question predicate. Rules
// fire only when every positive cue set matches and no exclusion does.
type anchorRule struct {
	cues       [][]string
	exclusions []string
	target     func(normQuestion string) bool
	confidence float64
}

func (m *Mapper) anchorMatch(norm string) (int, float64, bool) {
	rules := []anchorRule{
		// Self-introduction / firm-size: requires an intro cue AND a
		// firm-size cue, and none of the exclusion terms that indicate a
		// different question.
		{
			cues:       [][]string{m.kw.IntroCues, m.kw.FirmSizeCues},
			exclusions: m.kw.IntroExclusions,
			target:     func(q string) bool { return containsAny(q, m.kw.IntroCues) },
			confidence: 0.95,
		},
		// Competitor strength/weakness comparison.
		{
			cues: [][]string{m.kw.StrengthTerms, m.kw.ComparisonTerms},
			target: func(q string) bool {
				return containsAny(q, m.kw.Competitive) && containsAny(q, m.kw.StrengthTerms)
			},
			confidence: 0.9,
		},
		// Pricing rating.
		{
			cues: [][]string{m.kw.Pricing, m.kw.RatingTerms},
			target: func(q string) bool {
				return containsAny(q, m.kw.Pricing) && containsAny(q, m.kw.RatingTerms)
			},
			confidence: 0.85,
		},
		// Implementation experience.
		{
			cues: [][]string{m.kw.Implementation, m.kw.ExperienceTerms},
			target: func(q string) bool {
				return containsAny(q, m.kw.Implementation)
			},
			confidence: 0.8,
		},
		// Pain point.
		{
			cues: [][]string{m.kw.PainTerms, m.kw.ExperienceTerms},
			target: func(q string) bool {
				return containsAny(q, m.kw.PainTerms)
			},
			confidence: 0.6,
		},
	}

rules:
	for _, rule := range rules {
		for _, cueSet := range rule.cues {
			if !containsAny(norm, cueSet) {
				continue rules
			}
		}
		if containsAny(norm, rule.exclusions) {
			continue
		}
		for i, q := range m.normalized {
			if rule.target(q) {
				return i, rule.confidence, true
			}
		}
	}
	return 0, 0, false
}

// prefixMatch compares the first six normalized tokens of the raw question
// against each canonical prefix. The introduction question is excluded unless
// its own intro cues appear in the raw text, to prevent unrelated questions
// collapsing into it.
func (m *Mapper) prefixMatch(norm string) (int, bool) {
	rawPrefix := tokenPrefix(norm, prefixTokenCount)
	if rawPrefix == "" {
		return 0, false
	}
	for i, canonPrefix := range m.prefixes {
		if canonPrefix == "" {
			continue
		}
		if i == m.introIdx && !containsAny(norm, m.kw.IntroCues) {
			continue
		}
		if strings.Contains(rawPrefix, canonPrefix) || strings.Contains(canonPrefix, rawPrefix) {
			return i, true
		}
	}
	return 0, false
}

// fuzzyMatch scores the raw question against every canonical question and
// applies category-aware acceptance thresholds.
func (m *Mapper) fuzzyMatch(raw, norm string) (int, float64, bool) {
	bestIdx, bestScore := -1, 0.0
	fallbackIdx, fallbackScore := -1, 0.0
	introCued := containsAny(norm, m.kw.IntroCues)

	for i, q := range m.set.Questions {
		score := m.FuzzyScore(raw, q)

		if i == m.introIdx {
			// The intro question requires a much stronger overlap
			// unless its anchor cues are present, and never
			// participates in the low-confidence fallback.
			threshold := introFuzzyAccept
			if introCued {
				threshold = fuzzyAccept
			}
			if score >= threshold && score > bestScore {
				bestIdx, bestScore = i, score
			}
			continue
		}

		if score >= fuzzyAccept && score > bestScore {
			bestIdx, bestScore = i, score
		}
		if score >= fuzzyFallback && score > fallbackScore {
			fallbackIdx, fallbackScore = i, score
		}
	}

	if bestIdx >= 0 {
		return bestIdx, bestScore, true
	}
	if fallbackIdx >= 0 {
		return fallbackIdx, fallbackScore, true
	}
	return 0, 0, false
}

// FuzzyScore computes the stopword-filtered Jaccard similarity between two
// texts with additive boosts when both share a domain-keyword set. The result
// is capped at 1.0. Exported for the research clusterer's retrieval
// augmentation, which scores quote bodies against questions with the same
// scorer.
func (m *Mapper) FuzzyScore(a, b string) float64 {
	score := Jaccard(ContentTokens(a), ContentTokens(b))

	normA := NormalizeKey(a)
	normB := NormalizeKey(b)
	boost := func(terms []string, amount float64) {
		if containsAny(normA, terms) && containsAny(normB, terms) {
			score += amount
		}
	}
	boost(m.kw.Competitive, 0.25)
	boost(m.kw.Pricing, 0.2)
	boost(m.kw.Implementation, 0.2)
	boost(m.kw.Evaluation, 0.2)

	if score > 1 {
		score = 1
	}
	return score
}

func tokenPrefix(normalized string, n int) string {
	tokens := strings.Fields(normalized)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return strings.Join(tokens, " ")
}
