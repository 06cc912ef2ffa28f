package extract

import (
	"strings"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/xrash/smetrics"
)

// normalizeQuestion lowers the question and collapses whitespace so that
// similarity compares wording, not formatting.
func normalizeQuestion(q string) string {
	return spaceRunRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(q)), " ")
}

// questionSimilarity returns a similarity ratio in [0,1] between two
// normalized questions. It is the Levenshtein-family ratio with
// substitutions weighted twice, so identical strings score 1.0 and
// disjoint strings score 0.0.
func questionSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return 1.0 - float64(dist)/float64(total)
}

// Dedup drops items whose question is a near-duplicate of an earlier
// item's question. The first occurrence wins; order is preserved.
// Threshold is the minimum similarity that counts as a duplicate.
func Dedup(items []core.ExtractedItem, threshold float64) []core.ExtractedItem {
	out := make([]core.ExtractedItem, 0, len(items))
	kept := make([]string, 0, len(items))

	for _, it := range items {
		q := normalizeQuestion(it.Question)
		dup := false
		for _, existing := range kept {
			if questionSimilarity(q, existing) >= threshold {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, it)
			kept = append(kept, q)
		}
	}
	return out
}
