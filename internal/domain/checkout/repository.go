package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/vatid/backend/internal/domain/shared"
)

var (
	// ErrOrderNotFound is returned when an order does not exist
	ErrOrderNotFound = shared.NewDomainError("NOT_FOUND", "Order not found")
	// ErrInvalidField is returned when a field descriptor is rejected
	ErrInvalidField = shared.NewDomainError("INVALID_INPUT", "Invalid checkout field")
)

// OrderRepository persists orders together with their meta data
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
}
