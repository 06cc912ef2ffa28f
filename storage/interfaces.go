package storage

import (
	"context"

	"github.com/Jung-Seung-hwa/genmind/core"
)

// TenantRepository provides operations for managing tenants.
// Implementations must be thread-safe and support concurrent access.
type TenantRepository interface {
	// AddTenant registers a tenant. The tenant ID is derived from the
	// domain, so registering the same domain twice returns ErrDuplicateKey.
	// Sets CreatedAt if not already set.
	AddTenant(ctx context.Context, tenant *core.Tenant) (*core.Tenant, error)

	// GetTenant retrieves a tenant by ID.
	// Returns ErrTenantNotFound if the tenant doesn't exist.
	GetTenant(ctx context.Context, id core.ID) (*core.Tenant, error)

	// GetTenantByDomain retrieves a tenant by its domain string.
	// Returns ErrTenantNotFound if no tenant is registered for the domain.
	GetTenantByDomain(ctx context.Context, domain string) (*core.Tenant, error)

	// ListTenants returns all registered tenants.
	ListTenants(ctx context.Context) ([]*core.Tenant, error)

	// Close releases resources held by the repository.
	Close() error
}

// FAQRepository provides operations for managing FAQ records.
// Implementations must be thread-safe and support concurrent access.
type FAQRepository interface {
	// InsertFAQs adds FAQ records to storage. Records with ID=0 receive
	// new IDs from a sequence. Sets CreatedAt and UpdatedAt timestamps.
	// Every record's tenant must be registered: an unknown tenant fails
	// the whole batch with ErrTenantNotFound and nothing is written.
	// Returns the records with generated IDs populated.
	InsertFAQs(ctx context.Context, records ...*core.FAQRecord) ([]*core.FAQRecord, error)

	// UpdateFAQ updates an existing FAQ record in place.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the record doesn't exist.
	UpdateFAQ(ctx context.Context, record *core.FAQRecord) (*core.FAQRecord, error)

	// ReplaceSourceFAQs atomically replaces all records for a
	// (tenant, source file) pair: existing records for the pair are
	// deleted and the given records inserted in a single transaction.
	// Returns ErrTenantNotFound for an unknown tenant without touching
	// existing records. Returns the inserted records with generated IDs.
	ReplaceSourceFAQs(ctx context.Context, tenantID core.ID, sourceFile string, records ...*core.FAQRecord) ([]*core.FAQRecord, error)

	// DeleteFAQs removes FAQ records by their IDs.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteFAQs(ctx context.Context, ids ...core.ID) error

	// GetFAQ retrieves a single FAQ record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetFAQ(ctx context.Context, id core.ID) (*core.FAQRecord, error)

	// GetFAQs retrieves multiple FAQ records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetFAQs(ctx context.Context, ids ...core.ID) ([]*core.FAQRecord, error)

	// ListFAQs returns all FAQ records for a tenant.
	ListFAQs(ctx context.Context, tenantID core.ID) ([]*core.FAQRecord, error)

	// ListAllFAQs returns every FAQ record across all tenants. Used by
	// full vector index rebuilds.
	ListAllFAQs(ctx context.Context) ([]*core.FAQRecord, error)

	// ListFAQsBySource returns all FAQ records for a (tenant, source file) pair.
	ListFAQsBySource(ctx context.Context, tenantID core.ID, sourceFile string) ([]*core.FAQRecord, error)

	// ListSourceFiles returns the distinct source file names that have
	// records for a tenant, sorted lexicographically.
	ListSourceFiles(ctx context.Context, tenantID core.ID) ([]string, error)

	// FindByQuestionExact finds a tenant's record whose question matches
	// the given text exactly. Returns ErrNotFound if none matches.
	FindByQuestionExact(ctx context.Context, tenantID core.ID, question string) (*core.FAQRecord, error)

	// IncrementViews increments the view counter of a record by one.
	// Returns false without error if the record doesn't exist.
	IncrementViews(ctx context.Context, id core.ID) (bool, error)

	// IncrementViewsBulk increments the view counters of multiple records.
	// Missing records are skipped. Returns the number of records updated.
	IncrementViewsBulk(ctx context.Context, ids ...core.ID) (int, error)

	// TopViewed returns a tenant's records ranked by view count descending.
	// Records with equal view counts share a rank and the next distinct
	// count takes the following rank. Returns at most limit distinct ranks.
	TopViewed(ctx context.Context, tenantID core.ID, limit int) ([]*core.RankedFAQ, error)

	// Close releases resources held by the repository.
	Close() error
}
