package extract

import (
	"encoding/json"
	"strings"
)

// rawItem mirrors the JSON shape the extraction prompt asks the model for.
type rawItem struct {
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	RefArticle string  `json:"ref_article"`
}

// ParseModelResponse parses a model response into candidate items.
//
// The response is parsed as a JSON array first. If that fails, the
// substring between the first '[' and the last ']' is tried, which
// tolerates models that wrap the array in prose. Anything else yields
// zero items rather than an error; a malformed response is treated the
// same as an empty one.
func ParseModelResponse(response string) []rawItem {
	if items, ok := tryParse(response); ok {
		return items
	}

	i := strings.Index(response, "[")
	j := strings.LastIndex(response, "]")
	if i != -1 && j > i {
		if items, ok := tryParse(response[i : j+1]); ok {
			return items
		}
	}
	return nil
}

func tryParse(s string) ([]rawItem, bool) {
	var arr []rawItem
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return nil, false
	}
	return normalizeRaw(arr), true
}

// normalizeRaw trims fields, clamps confidence to [0,1] and drops items
// with an empty question or answer.
func normalizeRaw(arr []rawItem) []rawItem {
	out := make([]rawItem, 0, len(arr))
	for _, it := range arr {
		q := strings.TrimSpace(it.Question)
		a := strings.TrimSpace(it.Answer)
		if q == "" || a == "" {
			continue
		}
		c := it.Confidence
		if c < 0 {
			c = 0
		}
		if c > 1 {
			c = 1
		}
		out = append(out, rawItem{
			Question:   q,
			Answer:     a,
			Confidence: c,
			RefArticle: strings.TrimSpace(it.RefArticle),
		})
	}
	return out
}
