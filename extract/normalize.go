package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Jung-Seung-hwa/genmind/core"
)

var trailingQuestionMarkRE = regexp.MustCompile(`\s*\?\s*$`)

// PostFix normalizes an extracted item in place: a ragged trailing
// question mark becomes a single "?", whitespace runs in the answer
// collapse to single spaces, and items whose answer is too short to be
// useful get their confidence capped at 0.3.
func PostFix(item *core.ExtractedItem, minAnswerChars int) {
	item.Question = strings.TrimSpace(trailingQuestionMarkRE.ReplaceAllString(item.Question, "?"))
	item.Answer = strings.TrimSpace(spaceRunRE.ReplaceAllString(item.Answer, " "))
	if utf8.RuneCountInString(item.Answer) < minAnswerChars && item.Confidence > 0.3 {
		item.Confidence = 0.3
	}
}

// FilterByConfidence keeps items whose confidence is at least min.
func FilterByConfidence(items []core.ExtractedItem, min float64) []core.ExtractedItem {
	out := make([]core.ExtractedItem, 0, len(items))
	for _, it := range items {
		if it.Confidence >= min {
			out = append(out, it)
		}
	}
	return out
}
