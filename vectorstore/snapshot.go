package vectorstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Snapshot persistence for the index. The whole index is written as one
// file: an entry count followed by the entries. Writes go through a temp
// file and rename, so readers never observe a half-written snapshot.

type entryMUS struct{}

func (entryMUS) Marshal(e Entry, bs []byte) int {
	n := core.IDMUS.Marshal(e.Id, bs)
	n += varint.Int.Marshal(len(e.Vector), bs[n:])
	for _, v := range e.Vector {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	n += ord.String.Marshal(e.Text, bs[n:])
	n += core.IDMUS.Marshal(e.Meta.TenantId, bs[n:])
	n += ord.String.Marshal(e.Meta.SourceFile, bs[n:])
	n += ord.String.Marshal(e.Meta.RefArticle, bs[n:])
	n += ord.String.Marshal(e.Meta.Question, bs[n:])
	return n
}

func (entryMUS) Unmarshal(bs []byte) (e Entry, n int, err error) {
	var n1 int
	e.Id, n, err = core.IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var count int
	count, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	// Each component occupies 4 bytes, so a count beyond the remaining
	// data is corrupt. Checked before allocating.
	if count < 0 || count > len(bs[n:])/4 {
		err = ErrCorruptSnapshot
		return
	}
	e.Vector = make([]float32, count)
	for i := 0; i < count; i++ {
		e.Vector[i], n1, err = raw.Float32.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	e.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Meta.TenantId, n1, err = core.IDMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Meta.SourceFile, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Meta.RefArticle, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Meta.Question, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (entryMUS) Size(e Entry) int {
	size := core.IDMUS.Size(e.Id)
	size += varint.Int.Size(len(e.Vector))
	for _, v := range e.Vector {
		size += raw.Float32.Size(v)
	}
	size += ord.String.Size(e.Text)
	size += core.IDMUS.Size(e.Meta.TenantId)
	size += ord.String.Size(e.Meta.SourceFile)
	size += ord.String.Size(e.Meta.RefArticle)
	size += ord.String.Size(e.Meta.Question)
	return size
}

var entrySer = entryMUS{}

// MarshalEntries serializes entries into a snapshot byte slice.
func MarshalEntries(entries []Entry) []byte {
	size := varint.Int.Size(len(entries))
	for _, e := range entries {
		size += entrySer.Size(e)
	}

	buf := make([]byte, size)
	n := varint.Int.Marshal(len(entries), buf)
	for _, e := range entries {
		n += entrySer.Marshal(e, buf[n:])
	}
	return buf
}

// UnmarshalEntries deserializes a snapshot byte slice.
func UnmarshalEntries(data []byte) ([]Entry, error) {
	count, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	// An entry occupies at least one byte, so a count beyond the
	// remaining data is corrupt. Checked before allocating.
	if count < 0 || count > len(data[n:]) {
		return nil, ErrCorruptSnapshot
	}

	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		var (
			e  Entry
			n1 int
		)
		e, n1, err = entrySer.Unmarshal(data[n:])
		n += n1
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrCorruptSnapshot, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Save writes the index to path atomically.
func (ix *Index) Save(path string) error {
	data := MarshalEntries(ix.Entries())

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// Load populates the index from a snapshot file, replacing its contents.
// A missing file leaves the index empty without error; a fresh deployment
// has no snapshot yet.
func (ix *Index) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ix.Clear()
			return nil
		}
		return err
	}

	entries, err := UnmarshalEntries(data)
	if err != nil {
		return err
	}

	ix.Clear()
	return ix.Upsert(entries...)
}
