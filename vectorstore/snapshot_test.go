package vectorstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/mus-format/mus-go/varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.bin")

	ix := NewIndex()
	require.NoError(t, ix.Upsert(
		Entry{
			Id:     7,
			Vector: []float32{0.1, -0.5, 0.9},
			Text:   "Q: 환불 기한은?\nA: 14일 이내입니다.",
			Meta: Meta{
				TenantId:   core.IDFromContent("example.com"),
				SourceFile: "policy.pdf",
				RefArticle: "제7조",
				Question:   "환불 기한은?",
			},
		},
		Entry{
			Id:     8,
			Vector: []float32{0.2, 0.3, 0.4},
			Text:   "Q: 배송 기간은?\nA: 2~3일입니다.",
			Meta: Meta{
				TenantId: core.IDFromContent("example.com"),
				Question: "배송 기간은?",
			},
		},
	))

	require.NoError(t, ix.Save(path))

	loaded := NewIndex()
	require.NoError(t, loaded.Load(path))
	require.Equal(t, 2, loaded.Len())

	entry, ok := loaded.Get(7)
	require.True(t, ok)
	assert.Equal(t, []float32{0.1, -0.5, 0.9}, entry.Vector)
	assert.Equal(t, "Q: 환불 기한은?\nA: 14일 이내입니다.", entry.Text)
	assert.Equal(t, "제7조", entry.Meta.RefArticle)
	assert.Equal(t, "policy.pdf", entry.Meta.SourceFile)
}

func TestLoadMissingFileLeavesIndexEmpty(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Upsert(Entry{Id: 1, Vector: []float32{1}}))

	err := ix.Load(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	require.NoError(t, err)
	assert.Zero(t, ix.Len())
}

func TestLoadCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x02, 0xFF}, 0644))

	ix := NewIndex()
	err := ix.Load(path)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestUnmarshalEntriesOversizedCount(t *testing.T) {
	// An entry count claiming far more entries than the data could hold
	// must fail before allocation
	buf := make([]byte, varint.Int.Size(1<<40))
	varint.Int.Marshal(1<<40, buf)

	_, err := UnmarshalEntries(buf)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestUnmarshalEntriesOversizedVectorLength(t *testing.T) {
	// One entry whose vector length field claims more components than
	// the remaining bytes could carry
	tmp := make([]byte, 16)
	var buf []byte

	n := varint.Int.Marshal(1, tmp)
	buf = append(buf, tmp[:n]...)
	n = core.IDMUS.Marshal(core.ID(7), tmp)
	buf = append(buf, tmp[:n]...)
	n = varint.Int.Marshal(1<<40, tmp)
	buf = append(buf, tmp[:n]...)

	_, err := UnmarshalEntries(buf)
	assert.ErrorIs(t, err, ErrCorruptSnapshot)
}

func TestLoadOversizedCountSnapshot(t *testing.T) {
	buf := make([]byte, varint.Int.Size(1<<40))
	varint.Int.Marshal(1<<40, buf)

	path := filepath.Join(t.TempDir(), "index.bin")
	require.NoError(t, os.WriteFile(path, buf, 0644))

	ix := NewIndex()
	assert.ErrorIs(t, ix.Load(path), ErrCorruptSnapshot)
}

func TestSaveReplacesExistingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.bin")

	ix := NewIndex()
	require.NoError(t, ix.Upsert(Entry{Id: 1, Vector: []float32{1, 2}}))
	require.NoError(t, ix.Save(path))

	ix.Clear()
	require.NoError(t, ix.Upsert(Entry{Id: 2, Vector: []float32{3, 4}}))
	require.NoError(t, ix.Save(path))

	loaded := NewIndex()
	require.NoError(t, loaded.Load(path))
	require.Equal(t, 1, loaded.Len())

	_, ok := loaded.Get(2)
	assert.True(t, ok)
}
