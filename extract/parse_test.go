package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelResponseStrictJSON(t *testing.T) {
	response := `[
		{"question": "환불 기한은?", "answer": "14일 이내", "confidence": 0.9, "ref_article": "제7조"},
		{"question": "배송 기간은?", "answer": "2~3일", "confidence": 0.8, "ref_article": ""}
	]`

	items := ParseModelResponse(response)
	require.Len(t, items, 2)
	assert.Equal(t, "환불 기한은?", items[0].Question)
	assert.Equal(t, 0.9, items[0].Confidence)
	assert.Equal(t, "제7조", items[0].RefArticle)
}

func TestParseModelResponseWrappedInProse(t *testing.T) {
	response := "추출 결과는 다음과 같습니다:\n" +
		`[{"question": "질문?", "answer": "답변", "confidence": 0.7, "ref_article": ""}]` +
		"\n이상입니다."

	items := ParseModelResponse(response)
	require.Len(t, items, 1)
	assert.Equal(t, "질문?", items[0].Question)
}

func TestParseModelResponseMalformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"empty", ""},
		{"prose only", "죄송합니다. 추출할 수 없습니다."},
		{"not an array", `{"question": "q", "answer": "a"}`},
		{"broken json", `[{"question": "q", "answer":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ParseModelResponse(tt.response))
		})
	}
}

func TestParseModelResponseNormalization(t *testing.T) {
	response := `[
		{"question": "  질문?  ", "answer": "  답변  ", "confidence": 1.5, "ref_article": " 제1조 "},
		{"question": "", "answer": "답변만 있음", "confidence": 0.5},
		{"question": "질문만 있음", "answer": "", "confidence": 0.5},
		{"question": "음수 신뢰도?", "answer": "답", "confidence": -0.2}
	]`

	items := ParseModelResponse(response)
	require.Len(t, items, 2)

	assert.Equal(t, "질문?", items[0].Question)
	assert.Equal(t, "답변", items[0].Answer)
	assert.Equal(t, 1.0, items[0].Confidence, "confidence clamps to 1")
	assert.Equal(t, "제1조", items[0].RefArticle)

	assert.Equal(t, "음수 신뢰도?", items[1].Question)
	assert.Equal(t, 0.0, items[1].Confidence, "confidence clamps to 0")
}
