package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and timestamps of a persisted checkout
// record. Orders embed it; the ID is the one used in order URLs.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity starts a record with a fresh ID. Both timestamps are equal.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RestoreBaseEntity rebuilds a record loaded from storage
func RestoreBaseEntity(id uuid.UUID, createdAt, updatedAt time.Time) BaseEntity {
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	return BaseEntity{ID: id, CreatedAt: createdAt, UpdatedAt: updatedAt}
}

// GetUpdatedAt returns the time of the last change
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch records a change made after creation, such as a new meta value
// or a status update.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}
