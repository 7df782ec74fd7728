package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInteractionRepository implements crm.InteractionRepository using GORM
type GormInteractionRepository struct {
	db *gorm.DB
}

// NewGormInteractionRepository creates a new GormInteractionRepository
func NewGormInteractionRepository(db *gorm.DB) *GormInteractionRepository {
	return &GormInteractionRepository{db: db}
}

// WithTx returns a new repository instance bound to the given transaction
func (r *GormInteractionRepository) WithTx(tx *gorm.DB) *GormInteractionRepository {
	return &GormInteractionRepository{db: tx}
}

// FindByID finds an interaction by its ID
func (r *GormInteractionRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Interaction, error) {
	var interaction crm.Interaction
	if err := r.db.WithContext(ctx).First(&interaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &interaction, nil
}

// ListByCustomer returns one page of a customer's interactions ordered by
// occurrence time descending, plus the total count
func (r *GormInteractionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, page, pageSize int) ([]crm.Interaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&crm.Interaction{}).
		Where("customer_id = ?", customerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var interactions []crm.Interaction
	if err := query.Order("happened_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&interactions).Error; err != nil {
		return nil, 0, err
	}

	return interactions, total, nil
}

// MaxHappenedAt returns the latest occurrence time over all of the customer's
// interactions, or nil when none remain
func (r *GormInteractionRepository) MaxHappenedAt(ctx context.Context, customerID uuid.UUID) (*time.Time, error) {
	var latest sql.NullTime
	err := r.db.WithContext(ctx).Model(&crm.Interaction{}).
		Where("customer_id = ?", customerID).
		Select("MAX(happened_at)").
		Scan(&latest).Error
	if err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	t := latest.Time.UTC()
	return &t, nil
}

// Create inserts a new interaction
func (r *GormInteractionRepository) Create(ctx context.Context, interaction *crm.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

// SaveWithVersion writes the interaction conditioned on the version token it
// was loaded with
func (r *GormInteractionRepository) SaveWithVersion(ctx context.Context, interaction *crm.Interaction, previous time.Time) error {
	result := r.db.WithContext(ctx).Model(interaction).
		Where("updated_at = ?", previous).
		Select("*").
		Updates(interaction)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes an interaction permanently
func (r *GormInteractionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&crm.Interaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ crm.InteractionRepository = (*GormInteractionRepository)(nil)
