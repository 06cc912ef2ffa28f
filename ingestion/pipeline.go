package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/extract"
	"github.com/Jung-Seung-hwa/genmind/storage"
	"github.com/Jung-Seung-hwa/genmind/vectorsync"
	"github.com/panjf2000/ants/v2"
)

// Pipeline orchestrates the document-to-FAQ ingestion flow: extraction
// produces a reviewable preview, and a separate commit persists accepted
// items and schedules the vector index refresh.
//
// Extraction and commit are split on purpose. Extraction is expensive and
// speculative; its output is meant to be reviewed or edited before it
// replaces live records.
type Pipeline struct {
	faqs      storage.FAQRepository
	extractor *extract.Extractor
	sync      *vectorsync.Synchronizer
	syncPool  *ants.Pool
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for asynchronous index updates.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.syncPool != nil {
			p.syncPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.syncPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	faqs storage.FAQRepository,
	extractor *extract.Extractor,
	sync *vectorsync.Synchronizer,
	opts ...Option,
) (*Pipeline, error) {
	if faqs == nil {
		return nil, ErrFAQRepositoryRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if sync == nil {
		return nil, ErrSynchronizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		faqs:      faqs,
		extractor: extractor,
		sync:      sync,
		syncPool:  pool,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// ExtractDocument runs extraction over a PDF file and returns the
// candidate items for review. Nothing is persisted.
func (p *Pipeline) ExtractDocument(ctx context.Context, path, sourceFile string) (*extract.Result, error) {
	return p.extractor.ExtractFile(ctx, path, sourceFile)
}

// ExtractDocumentBytes runs extraction over an in-memory PDF.
func (p *Pipeline) ExtractDocumentBytes(ctx context.Context, data []byte, sourceFile string) (*extract.Result, error) {
	text, err := extract.ExtractPDFBytes(data)
	if err != nil {
		return nil, err
	}
	return p.extractor.ExtractText(ctx, text, sourceFile)
}

// Commit replaces the tenant's records for a source file with the given
// items and schedules an asynchronous vector index refresh for the new
// record ids. Items with an empty question or answer are skipped.
// Returns the persisted records.
//
// The store write is synchronous and atomic; the index refresh is not.
// Until the background upsert lands, queries may still see the previous
// generation of this file's entries.
func (p *Pipeline) Commit(ctx context.Context, tenantID core.ID, sourceFile string, items []core.ExtractedItem) ([]*core.FAQRecord, error) {
	if tenantID == 0 {
		return nil, ErrTenantRequired
	}
	if sourceFile == "" {
		return nil, ErrSourceFileRequired
	}

	records := make([]*core.FAQRecord, 0, len(items))
	for _, item := range items {
		question := strings.TrimSpace(item.Question)
		answer := strings.TrimSpace(item.Answer)
		if question == "" || answer == "" {
			continue
		}
		records = append(records, &core.FAQRecord{
			TenantId:   tenantID,
			SourceFile: sourceFile,
			Question:   question,
			Answer:     answer,
			RefArticle: strings.TrimSpace(item.RefArticle),
		})
	}

	// Collect the previous generation's ids so the background refresh
	// can purge entries whose records were just replaced
	previous, err := p.faqs.ListFAQsBySource(ctx, tenantID, sourceFile)
	if err != nil {
		return nil, err
	}
	staleIDs := make([]core.ID, len(previous))
	for i, r := range previous {
		staleIDs[i] = r.Id
	}

	saved, err := p.faqs.ReplaceSourceFAQs(ctx, tenantID, sourceFile, records...)
	if err != nil {
		return nil, err
	}

	ids := make([]core.ID, 0, len(saved)+len(staleIDs))
	for _, r := range saved {
		ids = append(ids, r.Id)
	}
	ids = append(ids, staleIDs...)

	p.scheduleSync(ids)

	p.logger.Info("source file committed",
		"tenantID", tenantID,
		"sourceFile", sourceFile,
		"records", len(saved),
		"replaced", len(staleIDs))
	return saved, nil
}

// IngestDocument extracts a PDF and commits the result in one step,
// without a review pause.
func (p *Pipeline) IngestDocument(ctx context.Context, tenantID core.ID, path, sourceFile string) ([]*core.FAQRecord, error) {
	result, err := p.ExtractDocument(ctx, path, sourceFile)
	if err != nil {
		return nil, err
	}
	return p.Commit(ctx, tenantID, sourceFile, result.Items)
}

// scheduleSync submits an index refresh for the given ids.
// Errors during async processing are logged but never fail the commit;
// the store is the source of truth and the index catches up on the next
// rebuild.
func (p *Pipeline) scheduleSync(ids []core.ID) {
	if len(ids) == 0 {
		return
	}
	err := p.syncPool.Submit(func() {
		if _, err := p.sync.UpsertByIDs(context.Background(), ids...); err != nil {
			p.logger.Error("error refreshing vector index", "err", err)
		}
	})
	if err != nil {
		p.logger.Error("error scheduling vector index refresh", "err", err)
	}
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.syncPool != nil {
		p.syncPool.Release()
	}
}
