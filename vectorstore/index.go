package vectorstore

import (
	"math"
	"slices"
	"sync"

	"github.com/Jung-Seung-hwa/genmind/core"
)

// Meta is the payload carried alongside an embedding. It mirrors what the
// query path needs to attribute a hit without a store round trip.
type Meta struct {
	TenantId   core.ID
	SourceFile string
	RefArticle string
	Question   string
}

// Entry is one indexed document. Id equals the FAQ record id, which keeps
// index entries joinable with the structured store across rebuilds.
type Entry struct {
	Id     core.ID
	Vector []float32
	Text   string
	Meta   Meta
}

// Hit is a search result with its cosine similarity score.
type Hit struct {
	Entry Entry
	Score float32
}

// Index is an in-memory brute-force cosine similarity index.
// An update is modeled as delete-by-id followed by insert; entries are
// never mutated in place. All methods are safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	entries []Entry
	byID    map[core.ID]int
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		byID: make(map[core.ID]int),
	}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Upsert inserts entries, replacing any existing entry with the same id.
func (ix *Index) Upsert(entries ...Entry) error {
	for _, e := range entries {
		if len(e.Vector) == 0 {
			return ErrEmptyVector
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, e := range entries {
		ix.deleteLocked(e.Id)
		ix.byID[e.Id] = len(ix.entries)
		ix.entries = append(ix.entries, e)
	}
	return nil
}

// Delete removes entries by id. Missing ids are ignored.
func (ix *Index) Delete(ids ...core.ID) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, id := range ids {
		ix.deleteLocked(id)
	}
}

// deleteLocked removes one entry by swapping in the last entry.
func (ix *Index) deleteLocked(id core.ID) {
	pos, ok := ix.byID[id]
	if !ok {
		return
	}
	last := len(ix.entries) - 1
	if pos != last {
		ix.entries[pos] = ix.entries[last]
		ix.byID[ix.entries[pos].Id] = pos
	}
	ix.entries = ix.entries[:last]
	delete(ix.byID, id)
}

// Clear removes all entries.
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = nil
	ix.byID = make(map[core.ID]int)
}

// Get returns the entry with the given id.
func (ix *Index) Get(id core.ID) (Entry, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	pos, ok := ix.byID[id]
	if !ok {
		return Entry{}, false
	}
	return ix.entries[pos], true
}

// Entries returns a copy of all entries, in no particular order.
func (ix *Index) Entries() []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return slices.Clone(ix.entries)
}

// Search returns the topK entries most similar to the query vector,
// ordered by cosine similarity descending. A non-zero tenantID restricts
// results to that tenant's entries.
func (ix *Index) Search(vector []float32, topK int, tenantID core.ID) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, ErrEmptyVector
	}
	if topK <= 0 {
		return nil, ErrInvalidTopK
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var hits []Hit
	for _, e := range ix.entries {
		if tenantID != 0 && e.Meta.TenantId != tenantID {
			continue
		}
		hits = append(hits, Hit{Entry: e, Score: cosineSimilarity(vector, e.Vector)})
	}

	slices.SortFunc(hits, func(a, b Hit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 for zero-magnitude vectors.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(magA) * math.Sqrt(magB)))
}
