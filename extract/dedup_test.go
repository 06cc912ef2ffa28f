package extract

import (
	"testing"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, questionSimilarity("환불 기한은?", "환불 기한은?"))
	assert.Equal(t, 1.0, questionSimilarity("", ""))

	// Case and spacing are handled by normalizeQuestion, not here
	high := questionSimilarity("what is the refund period?", "what is the refund period!")
	assert.Greater(t, high, 0.92)

	low := questionSimilarity("배송 기간은 얼마나 되나요?", "연차 휴가는 며칠인가요?")
	assert.Less(t, low, 0.92)
}

func TestDedupDropsNearDuplicates(t *testing.T) {
	items := []core.ExtractedItem{
		{Question: "What is the refund period?", Answer: "첫 번째 답변", Confidence: 0.9},
		{Question: "what is  the refund period?", Answer: "두 번째 답변", Confidence: 0.8},
		{Question: "연차 휴가는 며칠인가요?", Answer: "셋째 답변", Confidence: 0.7},
	}

	kept := Dedup(items, 0.92)
	require.Len(t, kept, 2)

	// The first occurrence wins
	assert.Equal(t, "첫 번째 답변", kept[0].Answer)
	assert.Equal(t, "연차 휴가는 며칠인가요?", kept[1].Question)
}

func TestDedupPreservesOrder(t *testing.T) {
	items := []core.ExtractedItem{
		{Question: "질문 하나?", Answer: "a"},
		{Question: "완전히 다른 두 번째 질문?", Answer: "b"},
		{Question: "세 번째로 또 다른 질문?", Answer: "c"},
	}

	kept := Dedup(items, 0.92)
	require.Len(t, kept, 3)
	assert.Equal(t, "a", kept[0].Answer)
	assert.Equal(t, "b", kept[1].Answer)
	assert.Equal(t, "c", kept[2].Answer)
}

func TestDedupIdempotent(t *testing.T) {
	items := []core.ExtractedItem{
		{Question: "질문 하나?", Answer: "a"},
		{Question: "완전히 다른 질문?", Answer: "b"},
	}

	once := Dedup(items, 0.92)
	twice := Dedup(once, 0.92)
	assert.Equal(t, once, twice)
}

func TestDedupEmpty(t *testing.T) {
	assert.Empty(t, Dedup(nil, 0.92))
}
