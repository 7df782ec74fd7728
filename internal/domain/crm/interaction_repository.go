package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// InteractionRepository defines the interface for interaction persistence
type InteractionRepository interface {
	// FindByID finds an interaction by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Interaction, error)

	// ListByCustomer returns a customer's interactions ordered by HappenedAt
	// descending, plus the total count
	ListByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]Interaction, int64, error)

	// MaxHappenedAt returns the latest HappenedAt across the customer's
	// interactions, or nil when none exist
	MaxHappenedAt(ctx context.Context, customerID uuid.UUID) (*time.Time, error)

	// Create inserts a new interaction
	Create(ctx context.Context, interaction *Interaction) error

	// SaveWithVersion persists the interaction only if the stored updated_at
	// still equals previous. Returns shared.ErrConcurrencyConflict otherwise.
	SaveWithVersion(ctx context.Context, interaction *Interaction, previous time.Time) error

	// Delete removes the interaction permanently
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories bundles the CRM repositories bound to one storage session
type Repositories struct {
	Customers    CustomerRepository
	Interactions InteractionRepository
}

// UnitOfWork runs a function against repositories bound to a single storage
// transaction. The function's writes commit together or not at all.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
