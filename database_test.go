package genmind

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.FAQRepository())
		assert.NotNil(t, db.TenantRepository())
		assert.NotNil(t, db.Synchronizer())
		assert.NotNil(t, db.Index())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// A file path where a directory is expected
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create extractor", func(t *testing.T) {
		extractor, err := db.NewExtractor()
		require.NoError(t, err)
		require.NotNil(t, extractor)
	})

	t.Run("can create query engine", func(t *testing.T) {
		engine, err := db.NewEngine()
		require.NoError(t, err)
		require.NotNil(t, engine)
	})
}

func TestDatabase_ResolveTenant(t *testing.T) {
	db, err := NewDatabase(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	added, err := db.TenantRepository().AddTenant(ctx, &core.Tenant{
		Domain: "acme.co.kr",
		Name:   "에이크미",
	})
	require.NoError(t, err)

	resolved, err := db.ResolveTenant(ctx, "acme.co.kr")
	require.NoError(t, err)
	assert.Equal(t, added.Id, resolved.Id)

	_, err = db.ResolveTenant(ctx, "unknown.example")
	assert.Error(t, err)
}

func TestDatabase_LoadsSnapshotOnOpen(t *testing.T) {
	dir := t.TempDir()

	// Write a snapshot where the database expects to find one
	seeded := vectorstore.NewIndex()
	require.NoError(t, seeded.Upsert(vectorstore.Entry{
		Id:     core.ID(42),
		Vector: []float32{0.1, 0.2, 0.3},
		Text:   "Q: 질문\nA: 답변",
		Meta:   vectorstore.Meta{TenantId: core.ID(1), SourceFile: "doc.pdf", Question: "질문"},
	}))
	require.NoError(t, seeded.Save(filepath.Join(dir, snapshotFileName)))

	db, err := NewDatabase(dir)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Index().Len())
	_, ok := db.Index().Get(core.ID(42))
	assert.True(t, ok)
}
