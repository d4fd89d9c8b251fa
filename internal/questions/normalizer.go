package questions

import (
	"log/slog"

	"github.com/saffronhq/saffron/internal/model"
)

// Normalize deduplicates an ordered list of raw guide questions by normalized
// key, keeping the first occurrence per key. The alias map records every input
// phrasing's surviving representative. An empty input yields an empty set,
// which disables research-seeded clustering downstream.
func Normalize(raw []string) *model.QuestionSet {
	set := &model.QuestionSet{
		Aliases: make(map[string]string, len(raw)),
	}

	byKey := make(map[string]string, len(raw))
	for _, q := range raw {
		key := NormalizeKey(q)
		if key == "" {
			continue
		}
		rep, seen := byKey[key]
		if !seen {
			byKey[key] = q
			set.Questions = append(set.Questions, q)
			rep = q
		}
		set.Aliases[q] = rep
	}

	if dropped := len(raw) - len(set.Questions); dropped > 0 {
		slog.Debug("deduplicated guide questions",
			"input", len(raw),
			"canonical", len(set.Questions),
			"dropped", dropped)
	}

	return set
}
