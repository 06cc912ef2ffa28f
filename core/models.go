package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs. Tenant ids are
// derived this way from the company domain string so that they stay stable
// across databases and vector index rebuilds.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Tenant is the company scope that partitions documents, FAQ records and
// query results.
type Tenant struct {
	Id        ID
	Domain    string // natural key, e.g. "acme.co.kr"
	Name      string
	Email     string
	CreatedAt time.Time
}

// FAQRecord is a persisted question/answer knowledge unit scoped to a tenant.
// The id is assigned once at insert and reused for the record's entire
// lifetime, including across vector index rebuilds.
type FAQRecord struct {
	Id         ID
	TenantId   ID
	SourceFile string
	Question   string
	Answer     string
	RefArticle string // optional citation, e.g. "제7조(휴가)"
	Views      uint64 // monotonically non-decreasing
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SearchableText returns the representation indexed for similarity search.
func (r *FAQRecord) SearchableText() string {
	return "Q: " + r.Question + "\nA: " + r.Answer
}

// Section is a contiguous, heading-bounded span of document text, the unit
// of model extraction. Index is 1-based within the document.
type Section struct {
	Index int
	Text  string
}

// ExtractedItem is a candidate question/answer pair parsed from a model
// response. Items are normalized, filtered and deduplicated before being
// persisted as FAQRecords.
type ExtractedItem struct {
	Question   string
	Answer     string
	Confidence float64 // model-asserted groundedness, clamped to [0,1]
	RefArticle string
	SectionId  int
	SourceFile string
}

// SearchResult is a retrieved FAQ record with its similarity score.
type SearchResult struct {
	Record *FAQRecord
	Score  float32
}

// Source is a citation attached to a synthesized answer.
type Source struct {
	Title      string // source file name
	RefArticle string
}

// Answer is the result of the retrieval query path.
type Answer struct {
	Text    string
	Sources []Source
}

// RankedFAQ is a FAQ record with its dense rank by view count.
type RankedFAQ struct {
	Record *FAQRecord
	Rank   int
}
