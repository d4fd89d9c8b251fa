package engine

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/saffronhq/saffron/internal/model"
	"github.com/saffronhq/saffron/internal/questions"
)

// ResearchClusterer groups quotes by mapped canonical question, backfilling
// thin questions via similarity retrieval before validating cohorts.
type ResearchClusterer struct {
	thresholds Thresholds
	mapper     *questions.Mapper
	floor      int     // minimum quotes per question before augmentation stops
	minScore   float64 // lowest fuzzy score accepted during backfill
}

// NewResearchClusterer creates a research clusterer. The mapper's fuzzy scorer
// is reused for retrieval augmentation.
func NewResearchClusterer(thresholds Thresholds, mapper *questions.Mapper, floor int, minScore float64) *ResearchClusterer {
	return &ResearchClusterer{
		thresholds: thresholds,
		mapper:     mapper,
		floor:      floor,
		minScore:   minScore,
	}
}

// Cluster collects each canonical question's mapped quotes, augments thin
// sets from the unmapped pool, and splits qualifying sets by sentiment. All
// emitted clusters carry origin "research" and the seeding question as key.
func (r *ResearchClusterer) Cluster(quotes []model.QuoteRecord, mappings map[string]model.QuestionMapping, set *model.QuestionSet) []*model.ThemeCluster {
	if set.Empty() {
		return nil
	}

	byQuestion := make(map[string][]model.QuoteRecord)
	var unmapped []model.QuoteRecord
	for _, q := range quotes {
		m, ok := mappings[q.ResponseID]
		if ok && m.Mapped() {
			byQuestion[m.Question] = append(byQuestion[m.Question], q)
		} else {
			unmapped = append(unmapped, q)
		}
	}

	var clusters []*model.ThemeCluster
	for _, question := range set.Questions {
		members := byQuestion[question]
		if len(members) < r.floor {
			members = r.augment(question, members, unmapped)
		}
		clusters = append(clusters, r.clusterQuestion(question, members)...)
	}
	return clusters
}

// augment backfills a thin question with the highest-scoring unmapped quotes.
// This deliberately trades precision for recall so questions are not starved
// of evidence.
func (r *ResearchClusterer) augment(question string, members, unmapped []model.QuoteRecord) []model.QuoteRecord {
	present := make(map[string]struct{}, len(members))
	for _, q := range members {
		present[q.ResponseID] = struct{}{}
	}

	type scored struct {
		quote model.QuoteRecord
		score float64
	}
	var candidates []scored
	for _, q := range unmapped {
		if _, ok := present[q.ResponseID]; ok {
			continue
		}
		if score := r.mapper.FuzzyScore(q.Text, question); score >= r.minScore {
			candidates = append(candidates, scored{quote: q, score: score})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	added := 0
	for _, c := range candidates {
		if len(members) >= r.floor {
			break
		}
		members = append(members, c.quote)
		added++
	}

	if added > 0 {
		slog.Debug("augmented thin research question",
			"question", question,
			"added", added,
			"total", len(members))
	}

	return members
}

func (r *ResearchClusterer) clusterQuestion(question string, members []model.QuoteRecord) []*model.ThemeCluster {
	if !r.qualifies(members) {
		return nil
	}

	positive := filterSentiment(members, model.SentimentPositive)
	negative := filterSentiment(members, model.SentimentNegative)
	unclear := append(filterSentiment(members, model.SentimentMixed),
		filterSentiment(members, model.SentimentNeutral)...)

	var clusters []*model.ThemeCluster
	emit := func(themeType model.ThemeType, pool []model.QuoteRecord, label string) {
		if !r.qualifies(pool) {
			return
		}
		pattern := fmt.Sprintf("%d %s quotes answering: %s", len(pool), label, question)
		clusters = append(clusters, model.NewThemeCluster(themeType, question, model.OriginResearch, pool, pattern))
	}
	emit(model.ThemeStrength, positive, "positive")
	emit(model.ThemeWeakness, negative, "negative")
	emit(model.ThemeInvestigation, unclear, "mixed or neutral")

	// No sentiment cohort qualified on its own, but the aggregate did:
	// surface the whole set for investigation rather than dropping it.
	if len(clusters) == 0 {
		pattern := fmt.Sprintf("%d quotes answering: %s", len(members), question)
		clusters = append(clusters, model.NewThemeCluster(model.ThemeInvestigation, question, model.OriginResearch, members, pattern))
	}

	return clusters
}

// qualifies applies the per-company-dedup guardrails: after restricting to
// one quote per company, the set must meet the company, quote, and impact
// minimums.
func (r *ResearchClusterer) qualifies(members []model.QuoteRecord) bool {
	if len(members) == 0 {
		return false
	}
	effective := model.DedupeByCompany(members)
	if model.UniqueCompanies(effective) < r.thresholds.MinCompanies {
		return false
	}
	if len(effective) < r.thresholds.MinQuotes {
		return false
	}
	return model.MeanImpact(effective) >= r.thresholds.MinImpact
}
