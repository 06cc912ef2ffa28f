package badger

import (
	"context"
	"time"

	"github.com/Jung-Seung-hwa/genmind/core"
	"github.com/Jung-Seung-hwa/genmind/storage"
	"github.com/dgraph-io/badger/v4"
)

// TenantRepository implements storage.TenantRepository for BadgerDB.
type TenantRepository struct {
	backend *Backend
}

var _ storage.TenantRepository = (*TenantRepository)(nil)

// NewTenantRepository creates a new TenantRepository.
func NewTenantRepository(backend *Backend) (*TenantRepository, error) {
	return &TenantRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *TenantRepository) Close() error {
	return nil
}

// AddTenant registers a tenant, deriving its ID from the domain.
func (r *TenantRepository) AddTenant(ctx context.Context, tenant *core.Tenant) (*core.Tenant, error) {
	if err := core.ValidateTenant(tenant); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		tenant.Id = core.IDFromContent(tenant.Domain)
		if tenant.CreatedAt.IsZero() {
			tenant.CreatedAt = time.Now().UTC()
		}

		key := makeTenantKey(tenant.Id)
		if _, err := tx.Get(key); err == nil {
			return storage.ErrDuplicateKey
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err := tx.Set(key, storage.MarshalTenant(tenant)); err != nil {
			return err
		}

		domainKey := makeTenantDomainKey(tenant.Domain)
		if err := tx.Set(domainKey, storage.MarshalID(tenant.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return tenant, err
}

// GetTenant retrieves a tenant by ID.
func (r *TenantRepository) GetTenant(ctx context.Context, id core.ID) (*core.Tenant, error) {
	var result *core.Tenant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readTenant(tx, makeTenantKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrTenantNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetTenantByDomain retrieves a tenant by its domain string.
func (r *TenantRepository) GetTenantByDomain(ctx context.Context, domain string) (*core.Tenant, error) {
	var result *core.Tenant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeTenantDomainKey(domain))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrTenantNotFound
			}
			return err
		}

		var tenantID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			tenantID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readTenant(tx, makeTenantKey(tenantID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrTenantNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListTenants returns all registered tenants.
func (r *TenantRepository) ListTenants(ctx context.Context) ([]*core.Tenant, error) {
	var results []*core.Tenant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(tenantRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var tenant *core.Tenant
			err := iter.Item().Value(func(val []byte) error {
				var err error
				tenant, err = storage.UnmarshalTenant(val)
				return err
			})
			if err != nil {
				return err
			}
			if tenant != nil {
				results = append(results, tenant)
			}
		}
		return nil
	}, false)
	return results, err
}

// readTenant reads a tenant from the transaction.
// Returns nil without error when the key is absent.
func readTenant(tx *badger.Txn, key []byte) (*core.Tenant, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var tenant *core.Tenant
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		tenant, unmarshalErr = storage.UnmarshalTenant(val)
		return unmarshalErr
	})
	return tenant, err
}
