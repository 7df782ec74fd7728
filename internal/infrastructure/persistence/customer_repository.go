package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// customerSortColumns maps API sort keys to the columns they order by
var customerSortColumns = map[string]string{
	crm.SortByCreatedAt:         "created_at",
	crm.SortByUpdatedAt:         "updated_at",
	crm.SortByLastInteractionAt: "last_interaction_at",
}

// GormCustomerRepository implements crm.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx returns a new repository instance bound to the given transaction
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: tx}
}

// FindByID finds a non-deleted customer by its ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var customer crm.Customer
	if err := r.db.WithContext(ctx).
		First(&customer, "id = ? AND is_deleted = false", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindByIDIncludingDeleted finds a customer regardless of its deletion flag.
// Interaction writes use it: a soft-deleted owner still gets its derived
// fields maintained.
func (r *GormCustomerRepository) FindByIDIncludingDeleted(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var customer crm.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// ExistsByName reports whether a non-deleted customer with the given company
// and contact name pair exists, excluding the given ID when set
func (r *GormCustomerRepository) ExistsByName(ctx context.Context, companyName, contactName string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&crm.Customer{}).
		Where("company_name = ? AND contact_name = ? AND is_deleted = false", companyName, contactName)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search returns one page of non-deleted customers matching the filters and
// the total match count over the whole filtered set
func (r *GormCustomerRepository) Search(ctx context.Context, search crm.CustomerSearch) ([]crm.Customer, int64, error) {
	query := r.db.WithContext(ctx).Model(&crm.Customer{}).Where("is_deleted = false")

	if search.Keyword != "" {
		pattern := "%" + search.Keyword + "%"
		query = query.Where("company_name ILIKE ? OR contact_name ILIKE ?", pattern, pattern)
	}
	if search.Status != "" {
		query = query.Where("status = ?", string(search.Status))
	}
	if search.Industry != "" {
		query = query.Where("industry = ?", search.Industry)
	}
	if search.Source != "" {
		query = query.Where("source = ?", string(search.Source))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []crm.Customer
	if err := query.Order(r.orderClause(search)).
		Offset(search.Offset()).
		Limit(search.PageSize).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Create inserts a new customer. A unique-index rejection of the company and
// contact name pair is reported as shared.ErrAlreadyExists.
func (r *GormCustomerRepository) Create(ctx context.Context, customer *crm.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithVersion writes the customer conditioned on the version token it was
// loaded with. When another writer committed in between, no row matches and
// shared.ErrConcurrencyConflict is returned.
func (r *GormCustomerRepository) SaveWithVersion(ctx context.Context, customer *crm.Customer, previous time.Time) error {
	result := r.db.WithContext(ctx).Model(customer).
		Where("updated_at = ?", previous).
		Select("*").
		Updates(customer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormCustomerRepository) orderClause(search crm.CustomerSearch) string {
	column := customerSortColumns[search.SortBy]
	if column == "" {
		column = "last_interaction_at"
	}
	direction := "DESC"
	if search.SortDir == crm.SortAsc {
		direction = "ASC"
	}
	if column == "last_interaction_at" {
		// Customers that never had an interaction sort after everyone else
		return fmt.Sprintf("%s %s NULLS LAST", column, direction)
	}
	return fmt.Sprintf("%s %s", column, direction)
}

var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)
