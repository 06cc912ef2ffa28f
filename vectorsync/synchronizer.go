package vectorsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Jung-Seung-hwa/genmind/ai"
	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/storage"
	"github.com/Jung-Seung-hwa/genmind/vectorstore"
)

// Synchronizer keeps the vector index consistent with the structured
// store. All writes to the index funnel through a single mutex, so a
// rebuild and a targeted upsert never interleave. Every successful write
// ends with a snapshot save.
type Synchronizer struct {
	faqs     storage.FAQRepository
	embedder ai.Embedder
	index    *vectorstore.Index

	// snapshotPath is where the index is persisted after each write.
	// Empty disables persistence, which tests use.
	snapshotPath string

	mu     sync.Mutex
	logger *slog.Logger
}

// NewSynchronizer creates a Synchronizer over the given repositories.
func NewSynchronizer(faqs storage.FAQRepository, embedder ai.Embedder, index *vectorstore.Index, snapshotPath string) *Synchronizer {
	return &Synchronizer{
		faqs:         faqs,
		embedder:     embedder,
		index:        index,
		snapshotPath: snapshotPath,
		logger:       slog.Default().With("component", "vectorsync"),
	}
}

// Rebuild re-embeds records and replaces the index contents wholesale.
// A non-zero tenantID rebuilds only that tenant's records; zero rebuilds
// everything. Returns the number of indexed entries.
// Fails with ErrNoRecords when there is nothing to index; an accidental
// rebuild against an empty store must not wipe a populated index.
func (s *Synchronizer) Rebuild(ctx context.Context, tenantID core.ID) (int, error) {
	records, err := s.fetch(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	entries, err := s.embedRecords(ctx, records)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.index.Clear()
	if err := s.index.Upsert(entries...); err != nil {
		return 0, err
	}
	if err := s.save(); err != nil {
		return 0, err
	}

	s.logger.Info("index rebuilt", "tenantID", tenantID, "entries", len(entries))
	return len(entries), nil
}

// UpsertAll re-embeds records and replaces their index entries, keeping
// entries for records outside the selection. A non-zero tenantID limits
// the selection to that tenant.
func (s *Synchronizer) UpsertAll(ctx context.Context, tenantID core.ID) (int, error) {
	records, err := s.fetch(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, ErrNoRecords
	}
	return s.upsertRecords(ctx, records)
}

// UpsertByIDs refreshes the index entries for specific record ids.
// Ids without a live record are deleted from the index; their records
// were removed from the store and the entries must not linger. Returns
// the number of re-indexed entries.
func (s *Synchronizer) UpsertByIDs(ctx context.Context, ids ...core.ID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	records, err := s.faqs.GetFAQs(ctx, ids...)
	if err != nil {
		return 0, err
	}

	live := make(map[core.ID]bool, len(records))
	for _, r := range records {
		live[r.Id] = true
	}
	var stale []core.ID
	for _, id := range ids {
		if !live[id] {
			stale = append(stale, id)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(stale) > 0 {
		s.index.Delete(stale...)
	}

	if len(records) > 0 {
		entries, err := s.embedRecords(ctx, records)
		if err != nil {
			return 0, err
		}
		if err := s.index.Upsert(entries...); err != nil {
			return 0, err
		}
	}

	if err := s.save(); err != nil {
		return 0, err
	}

	s.logger.Info("index entries upserted", "requested", len(ids), "indexed", len(records), "purged", len(stale))
	return len(records), nil
}

// DeleteByIDs removes index entries for the given record ids.
func (s *Synchronizer) DeleteByIDs(ids ...core.ID) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.index.Delete(ids...)
	return s.save()
}

// upsertRecords embeds records and swaps their entries into the index.
func (s *Synchronizer) upsertRecords(ctx context.Context, records []*core.FAQRecord) (int, error) {
	entries, err := s.embedRecords(ctx, records)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Upsert(entries...); err != nil {
		return 0, err
	}
	if err := s.save(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// fetch loads the record selection for a rebuild or bulk upsert.
func (s *Synchronizer) fetch(ctx context.Context, tenantID core.ID) ([]*core.FAQRecord, error) {
	if tenantID == 0 {
		return s.faqs.ListAllFAQs(ctx)
	}
	return s.faqs.ListFAQs(ctx, tenantID)
}

// embedRecords turns records into index entries via the embedder.
func (s *Synchronizer) embedRecords(ctx context.Context, records []*core.FAQRecord) ([]vectorstore.Entry, error) {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.SearchableText()
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, err)
	}
	if len(vectors) != len(records) {
		return nil, fmt.Errorf("%w: %d texts, %d vectors", ErrEmbeddingCountMismatch, len(records), len(vectors))
	}

	entries := make([]vectorstore.Entry, len(records))
	for i, r := range records {
		entries[i] = vectorstore.Entry{
			Id:     r.Id,
			Vector: vectors[i],
			Text:   texts[i],
			Meta: vectorstore.Meta{
				TenantId:   r.TenantId,
				SourceFile: r.SourceFile,
				RefArticle: r.RefArticle,
				Question:   r.Question,
			},
		}
	}
	return entries, nil
}

// save persists the index snapshot, when persistence is configured.
// Must be called with the mutex held.
func (s *Synchronizer) save() error {
	if s.snapshotPath == "" {
		return nil
	}
	return s.index.Save(s.snapshotPath)
}
