package shared

import (
	"time"

	"github.com/google/uuid"
)

// VersionTimeFormat is the wire format for updatedAt version tokens.
// Millisecond precision matches the comparison granularity.
const VersionTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities. UpdatedAt doubles as
// the optimistic-lock version token.
// Timestamps are assigned by the domain, never by the ORM: automatic
// timestamping is disabled so the token stays under domain control.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch advances the version token to the current UTC time, strictly greater
// than the previous value at millisecond resolution.
func (e *BaseEntity) Touch() {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if now.UnixMilli() <= e.UpdatedAt.UnixMilli() {
		now = e.UpdatedAt.Add(time.Millisecond)
	}
	e.UpdatedAt = now
}

// VersionEqual reports whether two version tokens denote the same revision.
// Comparison is at millisecond resolution: serialization round trips may drop
// sub-millisecond precision and must not produce false conflicts.
func VersionEqual(a, b time.Time) bool {
	return a.UnixMilli() == b.UnixMilli()
}

// NewBaseEntity creates a new base entity with generated ID
// Tokens are truncated to milliseconds so the in-memory value is identical
// to what the storage column and the wire format carry.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
