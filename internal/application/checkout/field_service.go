package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/vatid/backend/internal/domain/checkout"
)

// BlockFieldRegistry is the in-process registration point for block
// checkout additional fields
type BlockFieldRegistry struct {
	mu     sync.RWMutex
	order  []string
	fields map[string]checkout.AdditionalField
}

// NewBlockFieldRegistry creates an empty registry
func NewBlockFieldRegistry() *BlockFieldRegistry {
	return &BlockFieldRegistry{fields: make(map[string]checkout.AdditionalField)}
}

// RegisterAdditionalField validates and stores a field descriptor.
// Registering an id twice is rejected.
func (r *BlockFieldRegistry) RegisterAdditionalField(field checkout.AdditionalField) error {
	if err := field.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fields[field.ID]; exists {
		return fmt.Errorf("%w: field %q is already registered", checkout.ErrInvalidField, field.ID)
	}
	r.fields[field.ID] = field.Clone()
	r.order = append(r.order, field.ID)
	return nil
}

// Fields returns the registered descriptors in registration order
func (r *BlockFieldRegistry) Fields() []checkout.AdditionalField {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]checkout.AdditionalField, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.fields[id].Clone())
	}
	return out
}

// Has reports whether a field id is registered
func (r *BlockFieldRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.fields[id]
	return ok
}

var _ checkout.FieldRegistrar = (*BlockFieldRegistry)(nil)

// FieldService serves the checkout field definitions of both UIs
type FieldService struct {
	hooks    Hooks
	registry *BlockFieldRegistry
}

// NewFieldService creates a field service. A nil registry means the block
// checkout is not available.
func NewFieldService(hooks Hooks, registry *BlockFieldRegistry) *FieldService {
	return &FieldService{hooks: hooks, registry: registry}
}

// ClassicFields returns the platform fields after every extension filter ran
func (s *FieldService) ClassicFields(ctx context.Context) checkout.FieldSet {
	return s.hooks.FilterCheckoutFields(ctx, checkout.DefaultFieldSet())
}

// BlockFields returns the additional fields registered during boot
func (s *FieldService) BlockFields() []checkout.AdditionalField {
	if s.registry == nil {
		return []checkout.AdditionalField{}
	}
	return s.registry.Fields()
}

// BlockEnabled reports whether the block checkout is available
func (s *FieldService) BlockEnabled() bool {
	return s.registry != nil
}

// Registrar returns the registration capability handed to extensions at
// boot, or nil when the block checkout is not available
func (s *FieldService) Registrar() checkout.FieldRegistrar {
	if s.registry == nil {
		return nil
	}
	return s.registry
}
