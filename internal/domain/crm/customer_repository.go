package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sort keys accepted by CustomerSearch
const (
	SortByCreatedAt         = "createdAt"
	SortByUpdatedAt         = "updatedAt"
	SortByLastInteractionAt = "lastInteractionAt"
)

// Sort directions accepted by CustomerSearch
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CustomerSearch describes a paged customer query. Zero values mean
// "no filter"; Normalize fills in defaults and clamps out-of-range paging
// instead of rejecting it.
type CustomerSearch struct {
	Keyword  string
	Status   CustomerStatus
	Industry string
	Source   CustomerSource
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}

// Normalize applies defaults and clamps paging and sorting to allowed ranges
func (s *CustomerSearch) Normalize() {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = defaultPageSize
	}
	if s.PageSize > maxPageSize {
		s.PageSize = maxPageSize
	}
	switch s.SortBy {
	case SortByCreatedAt, SortByUpdatedAt, SortByLastInteractionAt:
	default:
		s.SortBy = SortByLastInteractionAt
	}
	switch s.SortDir {
	case SortAsc, SortDesc:
	default:
		s.SortDir = SortDesc
	}
}

// Offset returns the row offset for the normalized page
func (s *CustomerSearch) Offset() int {
	return (s.Page - 1) * s.PageSize
}

// CustomerRepository defines the interface for customer persistence.
// All lookups treat soft-deleted customers as absent unless stated otherwise.
type CustomerRepository interface {
	// FindByID finds a non-deleted customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDIncludingDeleted finds a customer regardless of the delete flag.
	// Internal validation paths only; never exposed through search or reads.
	FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*Customer, error)

	// ExistsByName reports whether another non-deleted customer already uses
	// the (companyName, contactName) pair. excludeID skips the record being
	// updated; pass uuid.Nil on the create path.
	ExistsByName(ctx context.Context, companyName, contactName string, excludeID uuid.UUID) (bool, error)

	// Search returns the matching page of non-deleted customers and the total
	// match count over the whole filtered set
	Search(ctx context.Context, search CustomerSearch) ([]Customer, int64, error)

	// Create inserts a new customer. A unique-index rejection on the name pair
	// is translated to shared.ErrAlreadyExists, never surfaced raw.
	Create(ctx context.Context, customer *Customer) error

	// SaveWithVersion persists the customer only if the stored updated_at
	// still equals previous. Returns shared.ErrConcurrencyConflict when
	// another writer got there first.
	SaveWithVersion(ctx context.Context, customer *Customer, previous time.Time) error
}
