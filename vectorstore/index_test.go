package vectorstore

import (
	"testing"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(id core.ID, tenantID core.ID, vector []float32) Entry {
	return Entry{
		Id:     id,
		Vector: vector,
		Text:   "Q: 질문\nA: 답변",
		Meta: Meta{
			TenantId:   tenantID,
			SourceFile: "doc.pdf",
			Question:   "질문",
		},
	}
}

func TestIndexUpsertAndGet(t *testing.T) {
	ix := NewIndex()

	err := ix.Upsert(testEntry(1, 100, []float32{1, 0, 0}))
	require.NoError(t, err)
	assert.Equal(t, 1, ix.Len())

	entry, ok := ix.Get(1)
	require.True(t, ok)
	assert.Equal(t, core.ID(1), entry.Id)

	_, ok = ix.Get(2)
	assert.False(t, ok)
}

func TestIndexUpsertReplacesById(t *testing.T) {
	ix := NewIndex()

	require.NoError(t, ix.Upsert(testEntry(1, 100, []float32{1, 0, 0})))

	updated := testEntry(1, 100, []float32{0, 1, 0})
	updated.Text = "Q: 수정된 질문\nA: 수정된 답변"
	require.NoError(t, ix.Upsert(updated))

	assert.Equal(t, 1, ix.Len(), "upsert with same id must not grow the index")

	entry, ok := ix.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Q: 수정된 질문\nA: 수정된 답변", entry.Text)
	assert.Equal(t, []float32{0, 1, 0}, entry.Vector)
}

func TestIndexUpsertRejectsEmptyVector(t *testing.T) {
	ix := NewIndex()
	err := ix.Upsert(Entry{Id: 1})
	assert.ErrorIs(t, err, ErrEmptyVector)
	assert.Zero(t, ix.Len())
}

func TestIndexDelete(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Upsert(
		testEntry(1, 100, []float32{1, 0, 0}),
		testEntry(2, 100, []float32{0, 1, 0}),
		testEntry(3, 100, []float32{0, 0, 1}),
	))

	ix.Delete(2, 999) // missing ids are ignored
	assert.Equal(t, 2, ix.Len())

	_, ok := ix.Get(2)
	assert.False(t, ok)

	// Remaining entries are still addressable after the swap-delete
	_, ok = ix.Get(1)
	assert.True(t, ok)
	_, ok = ix.Get(3)
	assert.True(t, ok)
}

func TestIndexSearchRanksBySimilarity(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Upsert(
		testEntry(1, 100, []float32{1, 0, 0}),
		testEntry(2, 100, []float32{0.9, 0.1, 0}),
		testEntry(3, 100, []float32{0, 1, 0}),
	))

	hits, err := ix.Search([]float32{1, 0, 0}, 2, 100)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, core.ID(1), hits[0].Entry.Id)
	assert.Equal(t, core.ID(2), hits[1].Entry.Id)
	assert.Greater(t, hits[0].Score, hits[1].Score)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-5)
}

func TestIndexSearchFiltersByTenant(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Upsert(
		testEntry(1, 100, []float32{1, 0, 0}),
		testEntry(2, 200, []float32{1, 0, 0}),
	))

	hits, err := ix.Search([]float32{1, 0, 0}, 10, 100)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, core.ID(1), hits[0].Entry.Id)

	// Zero tenant means no filter
	hits, err = ix.Search([]float32{1, 0, 0}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndexSearchValidation(t *testing.T) {
	ix := NewIndex()

	_, err := ix.Search(nil, 5, 0)
	assert.ErrorIs(t, err, ErrEmptyVector)

	_, err = ix.Search([]float32{1}, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidTopK)
}

func TestIndexSearchEmptyIndex(t *testing.T) {
	ix := NewIndex()
	hits, err := ix.Search([]float32{1, 0}, 5, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndexClear(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Upsert(testEntry(1, 100, []float32{1, 0})))
	ix.Clear()
	assert.Zero(t, ix.Len())
	_, ok := ix.Get(1)
	assert.False(t, ok)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-6)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
