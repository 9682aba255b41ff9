package shared

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEntity(t *testing.T) {
	a := NewBaseEntity()
	b := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestRestoreBaseEntity(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("keeps stored timestamps", func(t *testing.T) {
		updated := created.Add(time.Hour)
		e := RestoreBaseEntity(id, created, updated)

		assert.Equal(t, id, e.ID)
		assert.Equal(t, created, e.CreatedAt)
		assert.Equal(t, updated, e.GetUpdatedAt())
	})

	t.Run("update time never precedes creation", func(t *testing.T) {
		e := RestoreBaseEntity(id, created, time.Time{})
		assert.Equal(t, created, e.GetUpdatedAt())
	})
}

func TestBaseEntity_Touch(t *testing.T) {
	created := time.Now().Add(-time.Minute)
	e := RestoreBaseEntity(uuid.New(), created, created)

	e.Touch()

	assert.True(t, e.GetUpdatedAt().After(created))
	assert.Equal(t, created, e.CreatedAt)
}

func TestDomainError_Is(t *testing.T) {
	orderNotFound := NewDomainError("NOT_FOUND", "Order not found")

	assert.True(t, errors.Is(orderNotFound, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("lookup WC-1001: %w", orderNotFound), ErrNotFound))
	assert.False(t, errors.Is(orderNotFound, ErrInvalidInput))
	assert.Equal(t, "Order not found", orderNotFound.Error())
}
