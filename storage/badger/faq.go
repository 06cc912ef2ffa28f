package badger

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/storage"
	"github.com/dgraph-io/badger/v4"
)

// FAQRepository implements storage.FAQRepository for BadgerDB.
type FAQRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.FAQRepository = (*FAQRepository)(nil)

// NewFAQRepository creates a new FAQRepository.
func NewFAQRepository(backend *Backend) (*FAQRepository, error) {
	idSeq, err := backend.GetSequence(faqRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &FAQRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *FAQRepository) Close() error {
	return r.idSeq.Release()
}

// InsertFAQs adds FAQ records to storage. Every record's tenant must be
// registered; an unknown tenant fails the whole batch before any write.
func (r *FAQRepository) InsertFAQs(ctx context.Context, records ...*core.FAQRecord) ([]*core.FAQRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		checked := make(map[core.ID]bool, 1)
		for _, record := range records {
			if checked[record.TenantId] {
				continue
			}
			if err := requireTenant(tx, record.TenantId); err != nil {
				return err
			}
			checked[record.TenantId] = true
		}
		if err := r.insertInTx(tx, records); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	return records, err
}

// UpdateFAQ updates an existing FAQ record in place.
func (r *FAQRepository) UpdateFAQ(ctx context.Context, record *core.FAQRecord) (*core.FAQRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFAQRecordKey(record.Id)

		old, err := readFAQRecord(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		record.UpdatedAt = time.Now().UTC()

		if err := tx.Set(key, storage.MarshalFAQRecord(record)); err != nil {
			return err
		}

		// Refresh the question index if the question text changed
		if old.Question != record.Question {
			if err := tx.Delete(makeFAQQuestionKey(old.TenantId, old.Question, old.Id)); err != nil {
				return err
			}
			if err := tx.Set(makeFAQQuestionKey(record.TenantId, record.Question, record.Id), storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
	return record, err
}

// ReplaceSourceFAQs atomically replaces all records for a (tenant, source file) pair.
func (r *FAQRepository) ReplaceSourceFAQs(ctx context.Context, tenantID core.ID, sourceFile string, records ...*core.FAQRecord) ([]*core.FAQRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if err := requireTenant(tx, tenantID); err != nil {
			return err
		}

		// Collect existing record IDs for the pair
		existing, err := r.sourceRecordIDs(tx, tenantID, sourceFile)
		if err != nil {
			return err
		}

		for _, id := range existing {
			if err := r.deleteInTx(tx, id); err != nil {
				return err
			}
		}

		for _, record := range records {
			record.TenantId = tenantID
			record.SourceFile = sourceFile
		}
		if err := r.insertInTx(tx, records); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	return records, err
}

// DeleteFAQs removes FAQ records by their IDs.
func (r *FAQRepository) DeleteFAQs(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := readFAQRecord(tx, makeFAQRecordKey(id))
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}
			if err := r.deleteInTx(tx, id); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetFAQ retrieves a single FAQ record by ID.
func (r *FAQRepository) GetFAQ(ctx context.Context, id core.ID) (*core.FAQRecord, error) {
	var result *core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readFAQRecord(tx, makeFAQRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetFAQs retrieves multiple FAQ records by their IDs.
func (r *FAQRepository) GetFAQs(ctx context.Context, ids ...core.ID) ([]*core.FAQRecord, error) {
	var result []*core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := readFAQRecord(tx, makeFAQRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListFAQs returns all FAQ records for a tenant.
func (r *FAQRepository) ListFAQs(ctx context.Context, tenantID core.ID) ([]*core.FAQRecord, error) {
	var results []*core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.scanTenantRecords(tx, tenantID, func(record *core.FAQRecord) {
			results = append(results, record)
		})
	}, false)
	return results, err
}

// ListAllFAQs returns every FAQ record across all tenants.
func (r *FAQRepository) ListAllFAQs(ctx context.Context) ([]*core.FAQRecord, error) {
	var results []*core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		// The ':' keeps the sequence key out of the scan
		opts.Prefix = []byte(faqRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.FAQRecord
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalFAQRecord(val)
				return err
			}); err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// ListFAQsBySource returns all FAQ records for a (tenant, source file) pair.
func (r *FAQRepository) ListFAQsBySource(ctx context.Context, tenantID core.ID, sourceFile string) ([]*core.FAQRecord, error) {
	var results []*core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, err := r.sourceRecordIDs(tx, tenantID, sourceFile)
		if err != nil {
			return err
		}
		for _, id := range ids {
			record, err := readFAQRecord(tx, makeFAQRecordKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	return results, err
}

// ListSourceFiles returns the distinct source file names for a tenant.
func (r *FAQRepository) ListSourceFiles(ctx context.Context, tenantID core.ID) ([]string, error) {
	seen := make(map[string]bool)
	var results []string

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeTenantFAQPrefix(tenantID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			name := sourceFileFromKey(iter.Item().Key(), tenantID)
			if name != "" && !seen[name] {
				seen[name] = true
				results = append(results, name)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.Sort(results)
	return results, nil
}

// FindByQuestionExact finds a tenant's record matching the question text
// exactly. Records with identical questions each hold their own index slot;
// the match with the lowest record ID wins.
func (r *FAQRepository) FindByQuestionExact(ctx context.Context, tenantID core.ID, question string) (*core.FAQRecord, error) {
	var result *core.FAQRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialFAQQuestionKey(tenantID, question)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := readFAQRecord(tx, makeFAQRecordKey(recordID))
			if err != nil {
				return err
			}
			// The index slot is keyed by a hash of the question, so
			// verify the text before accepting the match
			if record != nil && record.Question == question {
				result = record
				return nil
			}
		}
		return storage.ErrNotFound
	}, false)
	return result, err
}

// IncrementViews increments the view counter of a record by one.
func (r *FAQRepository) IncrementViews(ctx context.Context, id core.ID) (bool, error) {
	found := false
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeFAQRecordKey(id)
		record, err := readFAQRecord(tx, key)
		if err != nil {
			return err
		}
		if record == nil {
			return nil
		}

		record.Views++
		record.UpdatedAt = time.Now().UTC()
		if err := tx.Set(key, storage.MarshalFAQRecord(record)); err != nil {
			return err
		}

		found = true
		return tx.Commit()
	}, true)
	return found, err
}

// IncrementViewsBulk increments the view counters of multiple records.
func (r *FAQRepository) IncrementViewsBulk(ctx context.Context, ids ...core.ID) (int, error) {
	updated := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, id := range ids {
			key := makeFAQRecordKey(id)
			record, err := readFAQRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}
			record.Views++
			record.UpdatedAt = now
			if err := tx.Set(key, storage.MarshalFAQRecord(record)); err != nil {
				return err
			}
			updated++
		}
		if updated == 0 {
			return nil
		}
		return tx.Commit()
	}, true)
	return updated, err
}

// TopViewed returns a tenant's records ranked by view count descending.
// Records sharing a view count share a rank; ranks are dense, so the next
// distinct count takes rank+1.
func (r *FAQRepository) TopViewed(ctx context.Context, tenantID core.ID, limit int) ([]*core.RankedFAQ, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	records, err := r.ListFAQs(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b *core.FAQRecord) int {
		if a.Views != b.Views {
			if a.Views > b.Views {
				return -1
			}
			return 1
		}
		// Stable order within a rank
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	var results []*core.RankedFAQ
	rank := 0
	var prevViews uint64
	for i, record := range records {
		if i == 0 || record.Views != prevViews {
			rank++
			prevViews = record.Views
		}
		if rank > limit {
			break
		}
		results = append(results, &core.RankedFAQ{Record: record, Rank: rank})
	}
	return results, nil
}

// Helper methods

// insertInTx inserts records inside an open transaction, assigning sequence
// IDs and timestamps and maintaining the source and question indices.
func (r *FAQRepository) insertInTx(tx *badger.Txn, records []*core.FAQRecord) error {
	now := time.Now().UTC()
	for _, record := range records {
		if record.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)
		}

		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		record.UpdatedAt = now

		key := makeFAQRecordKey(record.Id)
		if err := tx.Set(key, storage.MarshalFAQRecord(record)); err != nil {
			return err
		}

		srcKey := makeFAQSourceKey(record.TenantId, record.SourceFile, record.Id)
		if err := tx.Set(srcKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}

		qstKey := makeFAQQuestionKey(record.TenantId, record.Question, record.Id)
		if err := tx.Set(qstKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}
	}
	return nil
}

// deleteInTx removes a record and its index entries inside an open transaction.
func (r *FAQRepository) deleteInTx(tx *badger.Txn, id core.ID) error {
	key := makeFAQRecordKey(id)
	record, err := readFAQRecord(tx, key)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	srcKey := makeFAQSourceKey(record.TenantId, record.SourceFile, record.Id)
	if err := tx.Delete(srcKey); err != nil {
		return err
	}

	qstKey := makeFAQQuestionKey(record.TenantId, record.Question, record.Id)
	if err := tx.Delete(qstKey); err != nil {
		return err
	}

	return tx.Delete(key)
}

// requireTenant fails with ErrTenantNotFound when no tenant record exists
// for the ID. Record writes referencing an unknown tenant must fail before
// any key is set so the whole batch rolls back.
func requireTenant(tx *badger.Txn, tenantID core.ID) error {
	_, err := tx.Get(makeTenantKey(tenantID))
	if err == badger.ErrKeyNotFound {
		return fmt.Errorf("%w: tenant %d", storage.ErrTenantNotFound, tenantID)
	}
	return err
}

// sourceRecordIDs collects the record IDs indexed under a (tenant, source file) pair.
func (r *FAQRepository) sourceRecordIDs(tx *badger.Txn, tenantID core.ID, sourceFile string) ([]core.ID, error) {
	partial := makePartialFAQSourceKey(tenantID, sourceFile)
	var ids []core.ID

	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()

	for iter.Seek(partial); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if !bytes.HasPrefix(key, partial) {
			break
		}
		var recordID core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			recordID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return nil, err
		}
		ids = append(ids, recordID)
	}
	return ids, nil
}

// scanTenantRecords walks the tenant's source index and loads each record.
func (r *FAQRepository) scanTenantRecords(tx *badger.Txn, tenantID core.ID, fn func(*core.FAQRecord)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeTenantFAQPrefix(tenantID)
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var recordID core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			recordID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		record, err := readFAQRecord(tx, makeFAQRecordKey(recordID))
		if err != nil {
			return err
		}
		if record != nil {
			fn(record)
		}
	}
	return nil
}

// readFAQRecord reads a FAQ record from the transaction.
// Returns nil without error when the key is absent.
func readFAQRecord(tx *badger.Txn, key []byte) (*core.FAQRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.FAQRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalFAQRecord(val)
		return unmarshalErr
	})
	return record, err
}
