// Copyright 2025 Genmind Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package genmind

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Jung-Seung-hwa/genmind/ai"
	"github.com/Jung-Seung-hwa/genmind/ai/openai"
	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/extract"
	"github.com/Jung-Seung-hwa/genmind/ingestion"
	"github.com/Jung-Seung-hwa/genmind/search"
	"github.com/Jung-Seung-hwa/genmind/storage"
	"github.com/Jung-Seung-hwa/genmind/storage/badger"
	"github.com/Jung-Seung-hwa/genmind/vectorstore"
	"github.com/Jung-Seung-hwa/genmind/vectorsync"
)

// snapshotFileName is the vector index snapshot inside the database directory.
const snapshotFileName = "vector_index.snapshot"

// Database is the top-level handle to a genmind knowledge base: the record
// store, the vector index and the AI provider, wired for the ingestion and
// query flows.
type Database struct {
	backend       *badger.Backend
	faqRepo       storage.FAQRepository
	tenantRepo    storage.TenantRepository
	provider      ai.Provider
	index         *vectorstore.Index
	synchronizer  *vectorsync.Synchronizer
	extractConfig *extract.Config
	logger        *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig      *ai.Config
	extractConfig *extract.Config
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithExtractConfig sets the extraction pipeline configuration.
func WithExtractConfig(cfg *extract.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if cfg != nil {
			o.extractConfig = cfg
		}
	}
}

// NewDatabase opens or creates a knowledge base rooted at filePath. The
// vector index snapshot is loaded from the same directory when present.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig:      ai.DefaultConfig(),
		extractConfig: extract.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	faqRepo, err := badger.NewFAQRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	tenantRepo, err := badger.NewTenantRepository(backend)
	if err != nil {
		faqRepo.Close()
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		tenantRepo.Close()
		faqRepo.Close()
		backend.Close()
		return nil, err
	}

	index := vectorstore.NewIndex()
	snapshotPath := filepath.Join(filePath, snapshotFileName)
	if err := index.Load(snapshotPath); err != nil {
		slog.Default().Warn("error loading vector index snapshot, starting empty",
			"path", snapshotPath, "err", err)
		index.Clear()
	}

	return &Database{
		backend:       backend,
		faqRepo:       faqRepo,
		tenantRepo:    tenantRepo,
		provider:      provider,
		index:         index,
		synchronizer:  vectorsync.NewSynchronizer(faqRepo, provider.Embedder(), index, snapshotPath),
		extractConfig: options.extractConfig,
		logger:        slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.tenantRepo.Close(); err != nil {
		db.logger.Error("error closing tenant repository", "err", err)
		return err
	}
	if err := db.faqRepo.Close(); err != nil {
		db.logger.Error("error closing FAQ repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) FAQRepository() storage.FAQRepository {
	return db.faqRepo
}

func (db *Database) TenantRepository() storage.TenantRepository {
	return db.tenantRepo
}

func (db *Database) Synchronizer() *vectorsync.Synchronizer {
	return db.synchronizer
}

func (db *Database) Index() *vectorstore.Index {
	return db.index
}

// ResolveTenant looks up a tenant by its domain string.
func (db *Database) ResolveTenant(ctx context.Context, domain string) (*core.Tenant, error) {
	return db.tenantRepo.GetTenantByDomain(ctx, domain)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	extractor, err := db.NewExtractor()
	if err != nil {
		return nil, err
	}
	return ingestion.NewPipeline(db.faqRepo, extractor, db.synchronizer, opts...)
}

func (db *Database) NewExtractor() (*extract.Extractor, error) {
	return extract.NewExtractor(db.provider.Generator(), db.extractConfig)
}

func (db *Database) NewEngine(opts ...search.Option) (*search.Engine, error) {
	return search.NewEngine(db.faqRepo, db.index, db.provider, opts...)
}
