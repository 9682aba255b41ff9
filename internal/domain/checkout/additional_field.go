package checkout

import (
	"fmt"
	"maps"
	"regexp"
)

// FieldLocation is the block checkout group an additional field is rendered in
type FieldLocation string

const (
	LocationContact FieldLocation = "contact"
	LocationAddress FieldLocation = "address"
	LocationOrder   FieldLocation = "order"
)

// IsValid checks if the location is known to the block checkout
func (l FieldLocation) IsValid() bool {
	switch l {
	case LocationContact, LocationAddress, LocationOrder:
		return true
	}
	return false
}

// namespacedIDPattern requires "namespace/field" so ids from different
// extensions cannot collide.
var namespacedIDPattern = regexp.MustCompile(`^[a-z0-9_-]+/[a-z0-9_-]+$`)

// AdditionalField is the descriptor an extension registers with the block checkout
type AdditionalField struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	Location   FieldLocation     `json:"location"`
	Type       string            `json:"type"`
	Required   bool              `json:"required"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Validate checks the descriptor before registration
func (f AdditionalField) Validate() error {
	if !namespacedIDPattern.MatchString(f.ID) {
		return fmt.Errorf("%w: field id %q must be namespaced as namespace/name", ErrInvalidField, f.ID)
	}
	if f.Label == "" {
		return fmt.Errorf("%w: field %q has no label", ErrInvalidField, f.ID)
	}
	if !f.Location.IsValid() {
		return fmt.Errorf("%w: field %q has unknown location %q", ErrInvalidField, f.ID, f.Location)
	}
	if f.Type == "" {
		return fmt.Errorf("%w: field %q has no type", ErrInvalidField, f.ID)
	}
	return nil
}

// Clone returns a copy that does not share the attribute map
func (f AdditionalField) Clone() AdditionalField {
	f.Attributes = maps.Clone(f.Attributes)
	return f
}

// FieldRegistrar is the block checkout's field registration capability.
// Hosts without block checkout support provide no registrar at all.
type FieldRegistrar interface {
	RegisterAdditionalField(field AdditionalField) error
}
