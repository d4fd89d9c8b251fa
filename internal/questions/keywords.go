package questions

import "github.com/spf13/viper"

// Keywords holds the heuristic term lists used by the mapper. They are plain
// data so deployments can tune them without touching control flow.
type Keywords struct {
	// Domain-keyword sets that add fuzzy-score boosts when shared by both
	// the raw and canonical question.
	Competitive    []string
	Pricing        []string
	Implementation []string
	Evaluation     []string

	// Anchor-rule cues.
	IntroCues       []string // self-introduction cues
	FirmSizeCues    []string // firm-size cues paired with intro cues
	IntroExclusions []string // terms that indicate a different question
	StrengthTerms   []string
	ComparisonTerms []string
	RatingTerms     []string
	PainTerms       []string
	ExperienceTerms []string
}

// DefaultKeywords returns the stock term lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Competitive:    []string{"competitor", "competitors", "competitive", "alternative", "alternatives", "versus", "vendors"},
		Pricing:        []string{"pricing", "price", "cost", "fees", "budget", "commercial"},
		Implementation: []string{"implementation", "onboarding", "rollout", "deployment", "integration", "setup"},
		Evaluation:     []string{"evaluate", "evaluation", "criteria", "decision", "selection", "shortlist"},

		IntroCues:       []string{"introduce yourself", "your role", "describe your role", "tell us about yourself"},
		FirmSizeCues:    []string{"firm", "company size", "how many", "employees", "team size", "organization"},
		IntroExclusions: []string{"evaluate", "pricing", "competitor", "implementation", "decision"},
		StrengthTerms:   []string{"strength", "strengths", "weakness", "weaknesses", "better", "worse"},
		ComparisonTerms: []string{"compare", "compared", "comparison", "versus", "against", "relative"},
		RatingTerms:     []string{"rate", "rating", "scale", "score", "1 to 10", "out of"},
		PainTerms:       []string{"pain", "pain point", "challenge", "frustration", "problem", "struggle"},
		ExperienceTerms: []string{"experience", "process", "went", "journey", "onboarding"},
	}
}

// KeywordsFromViper overlays configured term lists on the defaults. Keys live
// under questions.keywords.* in the config file.
func KeywordsFromViper(v *viper.Viper) Keywords {
	kw := DefaultKeywords()
	overlay := func(key string, dst *[]string) {
		full := "questions.keywords." + key
		if v.IsSet(full) {
			if terms := v.GetStringSlice(full); len(terms) > 0 {
				*dst = terms
			}
		}
	}
	overlay("competitive", &kw.Competitive)
	overlay("pricing", &kw.Pricing)
	overlay("implementation", &kw.Implementation)
	overlay("evaluation", &kw.Evaluation)
	overlay("intro_cues", &kw.IntroCues)
	overlay("firm_size_cues", &kw.FirmSizeCues)
	overlay("intro_exclusions", &kw.IntroExclusions)
	overlay("strength_terms", &kw.StrengthTerms)
	overlay("comparison_terms", &kw.ComparisonTerms)
	overlay("rating_terms", &kw.RatingTerms)
	overlay("pain_terms", &kw.PainTerms)
	overlay("experience_terms", &kw.ExperienceTerms)
	return kw
}
