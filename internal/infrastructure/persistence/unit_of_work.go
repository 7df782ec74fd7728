package persistence

import (
	"context"

	"github.com/crm/backend/internal/domain/crm"
	"gorm.io/gorm"
)

// GormUnitOfWork executes a unit of work inside a single database
// transaction. Interaction writes use it so the interaction row and the
// owner's derived fields commit or roll back together.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn with repositories bound to one transaction. Any error rolls
// the whole transaction back.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(repos crm.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(crm.Repositories{
			Customers:    NewGormCustomerRepository(tx),
			Interactions: NewGormInteractionRepository(tx),
		})
	})
}

var _ crm.UnitOfWork = (*GormUnitOfWork)(nil)
