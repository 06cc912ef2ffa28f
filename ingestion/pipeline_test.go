package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/Jung-Seung-hwa/genmind/ai/mock"
	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/extract"
	"github.com/Jung-Seung-hwa/genmind/storage"
	"github.com/Jung-Seung-hwa/genmind/storage/badger"
	"github.com/Jung-Seung-hwa/genmind/vectorstore"
	"github.com/Jung-Seung-hwa/genmind/vectorsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineEnv struct {
	pipeline *Pipeline
	faqs     storage.FAQRepository
	index    *vectorstore.Index
	tenant   core.ID
}

func setupTestPipeline(t *testing.T) *pipelineEnv {
	t.Helper()

	faqRepo, tenantRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		tenantRepo.Close()
		faqRepo.Close()
		backend.Close()
	})

	tenant, err := tenantRepo.AddTenant(context.Background(), &core.Tenant{Domain: "acme.example"})
	require.NoError(t, err)

	extractor, err := extract.NewExtractor(mock.NewMockGenerator(), extract.DefaultConfig())
	require.NoError(t, err)

	index := vectorstore.NewIndex()
	sync := vectorsync.NewSynchronizer(faqRepo, mock.NewMockEmbedder(), index, "")

	pipeline, err := NewPipeline(faqRepo, extractor, sync)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return &pipelineEnv{pipeline: pipeline, faqs: faqRepo, index: index, tenant: tenant.Id}
}

func waitForIndexLen(t *testing.T, index *vectorstore.Index, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return index.Len() == want
	}, 5*time.Second, 10*time.Millisecond, "index never reached %d entries", want)
}

func TestCommitPersistsAndIndexes(t *testing.T) {
	env := setupTestPipeline(t)
	ctx := context.Background()

	items := []core.ExtractedItem{
		{Question: "연차휴가는 며칠인가요?", Answer: "1년 근속 시 15일이 부여됩니다.", RefArticle: "제15조"},
		{Question: "병가 신청 절차는?", Answer: "진단서를 첨부하여 신청합니다.", RefArticle: "제18조"},
	}

	saved, err := env.pipeline.Commit(ctx, env.tenant, "취업규칙.pdf", items)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "연차휴가는 며칠인가요?", saved[0].Question)
	assert.Equal(t, env.tenant, saved[0].TenantId)
	assert.Equal(t, "취업규칙.pdf", saved[0].SourceFile)

	waitForIndexLen(t, env.index, 2)
	entry, ok := env.index.Get(saved[0].Id)
	require.True(t, ok)
	assert.Equal(t, saved[0].Question, entry.Meta.Question)
}

func TestCommitSkipsEmptyItems(t *testing.T) {
	env := setupTestPipeline(t)
	ctx := context.Background()

	items := []core.ExtractedItem{
		{Question: "질문만 있는 항목", Answer: "   "},
		{Question: "", Answer: "답변만 있는 항목"},
		{Question: "  유효한 질문  ", Answer: "  유효한 답변  "},
	}

	saved, err := env.pipeline.Commit(ctx, env.tenant, "doc.pdf", items)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "유효한 질문", saved[0].Question)
	assert.Equal(t, "유효한 답변", saved[0].Answer)
}

func TestCommitReplacesPreviousGeneration(t *testing.T) {
	env := setupTestPipeline(t)
	ctx := context.Background()

	first := []core.ExtractedItem{
		{Question: "구버전 질문 1", Answer: "구버전 답변 1"},
		{Question: "구버전 질문 2", Answer: "구버전 답변 2"},
		{Question: "구버전 질문 3", Answer: "구버전 답변 3"},
	}
	savedFirst, err := env.pipeline.Commit(ctx, env.tenant, "규정.pdf", first)
	require.NoError(t, err)
	waitForIndexLen(t, env.index, 3)

	second := []core.ExtractedItem{
		{Question: "신버전 질문", Answer: "신버전 답변"},
	}
	savedSecond, err := env.pipeline.Commit(ctx, env.tenant, "규정.pdf", second)
	require.NoError(t, err)
	require.Len(t, savedSecond, 1)

	// The old records and their index entries are gone
	waitForIndexLen(t, env.index, 1)
	for _, r := range savedFirst {
		_, ok := env.index.Get(r.Id)
		assert.False(t, ok)
	}
	_, ok := env.index.Get(savedSecond[0].Id)
	assert.True(t, ok)

	records, err := env.faqs.ListFAQsBySource(ctx, env.tenant, "규정.pdf")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "신버전 질문", records[0].Question)
}

func TestCommitLeavesOtherSourcesAlone(t *testing.T) {
	env := setupTestPipeline(t)
	ctx := context.Background()

	_, err := env.pipeline.Commit(ctx, env.tenant, "a.pdf", []core.ExtractedItem{
		{Question: "문서 A의 질문", Answer: "문서 A의 답변"},
	})
	require.NoError(t, err)
	_, err = env.pipeline.Commit(ctx, env.tenant, "b.pdf", []core.ExtractedItem{
		{Question: "문서 B의 질문", Answer: "문서 B의 답변"},
	})
	require.NoError(t, err)
	waitForIndexLen(t, env.index, 2)

	_, err = env.pipeline.Commit(ctx, env.tenant, "a.pdf", []core.ExtractedItem{
		{Question: "문서 A의 수정된 질문", Answer: "문서 A의 수정된 답변"},
	})
	require.NoError(t, err)
	waitForIndexLen(t, env.index, 2)

	records, err := env.faqs.ListFAQsBySource(ctx, env.tenant, "b.pdf")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "문서 B의 질문", records[0].Question)
}

func TestCommitValidation(t *testing.T) {
	env := setupTestPipeline(t)
	ctx := context.Background()

	_, err := env.pipeline.Commit(ctx, core.ID(0), "doc.pdf", nil)
	assert.ErrorIs(t, err, ErrTenantRequired)

	_, err = env.pipeline.Commit(ctx, env.tenant, "", nil)
	assert.ErrorIs(t, err, ErrSourceFileRequired)
}

func TestCommitUnknownTenant(t *testing.T) {
	env := setupTestPipeline(t)
	ctx := context.Background()

	_, err := env.pipeline.Commit(ctx, core.IDFromContent("ghost.example"), "doc.pdf", []core.ExtractedItem{
		{Question: "질문", Answer: "답변"},
	})
	assert.ErrorIs(t, err, storage.ErrTenantNotFound)
}

func TestCommitEmptyItemsClearsSource(t *testing.T) {
	env := setupTestPipeline(t)
	ctx := context.Background()

	saved, err := env.pipeline.Commit(ctx, env.tenant, "doc.pdf", []core.ExtractedItem{
		{Question: "질문", Answer: "답변"},
	})
	require.NoError(t, err)
	waitForIndexLen(t, env.index, 1)

	saved2, err := env.pipeline.Commit(ctx, env.tenant, "doc.pdf", nil)
	require.NoError(t, err)
	assert.Empty(t, saved2)

	waitForIndexLen(t, env.index, 0)
	_, ok := env.index.Get(saved[0].Id)
	assert.False(t, ok)

	records, err := env.faqs.ListFAQsBySource(ctx, env.tenant, "doc.pdf")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewPipelineValidation(t *testing.T) {
	faqRepo, tenantRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		tenantRepo.Close()
		faqRepo.Close()
		backend.Close()
	}()

	extractor, err := extract.NewExtractor(mock.NewMockGenerator(), extract.DefaultConfig())
	require.NoError(t, err)

	index := vectorstore.NewIndex()
	sync := vectorsync.NewSynchronizer(faqRepo, mock.NewMockEmbedder(), index, "")

	_, err = NewPipeline(nil, extractor, sync)
	assert.ErrorIs(t, err, ErrFAQRepositoryRequired)

	_, err = NewPipeline(faqRepo, nil, sync)
	assert.ErrorIs(t, err, ErrExtractorRequired)

	_, err = NewPipeline(faqRepo, extractor, nil)
	assert.ErrorIs(t, err, ErrSynchronizerRequired)

	p, err := NewPipeline(faqRepo, extractor, sync, WithPoolSize(2))
	require.NoError(t, err)
	p.Release()
}
