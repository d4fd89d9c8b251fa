package model

// MatchMethod tags how a raw captured question was mapped to a canonical
// research question.
type MatchMethod string

// Match methods, in descending order of reliability.
const (
	MatchExact  MatchMethod = "exact"
	MatchAnchor MatchMethod = "anchor"
	MatchPrefix MatchMethod = "prefix"
	MatchFuzzy  MatchMethod = "fuzzy"
	MatchNone   MatchMethod = "none"
)

// QuestionSet is the deduplicated, ordered canonical research-question list
// built once per run from the external guide.
type QuestionSet struct {
	Questions []string
	// Aliases maps every input phrasing to its surviving canonical
	// representative.
	Aliases map[string]string
}

// Empty reports whether research-seeded clustering is available.
func (s *QuestionSet) Empty() bool {
	return s == nil || len(s.Questions) == 0
}

// QuestionMapping records the canonical question resolved for one quote.
// An empty Question with MatchNone means the quote is excluded from
// research-seeded clustering but remains eligible for subject clustering.
type QuestionMapping struct {
	ResponseID string
	Question   string
	Method     MatchMethod
	Confidence float64
}

// Mapped reports whether the quote resolved to a canonical question.
func (m QuestionMapping) Mapped() bool {
	return m.Question != "" && m.Method != MatchNone
}
