package engine

import (
	"log/slog"

	"github.com/saffronhq/saffron/internal/model"
)

// MergeAll deduplicates candidate clusters whose member response-id sets
// overlap heavily across the two clustering paths. Clusters with Jaccard
// similarity at or above the threshold are merged pairwise in a single pass:
// a cluster absorbed by a merge is excluded from further comparisons, so
// chains of near-duplicates across more than two clusters may not fully
// collapse. That is a known, accepted approximation.
func MergeAll(clusters []*model.ThemeCluster, threshold float64) []*model.ThemeCluster {
	if len(clusters) < 2 {
		return clusters
	}

	used := make([]bool, len(clusters))
	out := make([]*model.ThemeCluster, 0, len(clusters))
	merges := 0

	for i := range clusters {
		if used[i] {
			continue
		}
		current := clusters[i]
		for j := i + 1; j < len(clusters); j++ {
			if used[j] {
				continue
			}
			if idJaccard(current, clusters[j]) >= threshold {
				current = mergeClusters(current, clusters[j])
				used[j] = true
				merges++
			}
		}
		out = append(out, current)
	}

	if merges > 0 {
		slog.Info("merged overlapping clusters",
			"input", len(clusters),
			"output", len(out),
			"merges", merges)
	}

	return out
}

// mergeClusters unions two clusters' members. The representative type, key,
// and pattern come from whichever cluster has more members; origin becomes
// hybrid when the two paths differ.
func mergeClusters(a, b *model.ThemeCluster) *model.ThemeCluster {
	rep, other := a, b
	if len(b.Quotes) > len(a.Quotes) {
		rep, other = b, a
	}

	origin := rep.Origin
	if a.Origin != b.Origin {
		origin = model.OriginHybrid
	}

	merged := model.NewThemeCluster(rep.Type, rep.Key, origin, rep.Quotes, rep.Pattern)
	merged.AddQuotes(other.Quotes...)
	return merged
}

// idJaccard computes Jaccard similarity over the two clusters' response-id
// sets.
func idJaccard(a, b *model.ThemeCluster) float64 {
	idsA := a.ResponseIDs()
	idsB := b.ResponseIDs()
	if len(idsA) == 0 || len(idsB) == 0 {
		return 0
	}
	intersection := 0
	for id := range idsA {
		if _, ok := idsB[id]; ok {
			intersection++
		}
	}
	union := len(idsA) + len(idsB) - intersection
	return float64(intersection) / float64(union)
}
