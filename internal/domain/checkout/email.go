package checkout

import "slices"

// EmailField is one labelled row in an order notification email
type EmailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EmailFields is the ordered set of extra fields scheduled for an order email
type EmailFields struct {
	keys   []string
	fields map[string]EmailField
}

// NewEmailFields creates an empty field set
func NewEmailFields() EmailFields {
	return EmailFields{fields: make(map[string]EmailField)}
}

// Set adds or replaces a field, appending new keys
func (e *EmailFields) Set(key string, field EmailField) {
	if e.fields == nil {
		e.fields = make(map[string]EmailField)
	}
	if _, ok := e.fields[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.fields[key] = field
}

// Get returns a field by key
func (e EmailFields) Get(key string) (EmailField, bool) {
	f, ok := e.fields[key]
	return f, ok
}

// Len returns the number of fields
func (e EmailFields) Len() int {
	return len(e.keys)
}

// Keys returns the field keys in insertion order
func (e EmailFields) Keys() []string {
	return slices.Clone(e.keys)
}

// All returns the fields in insertion order
func (e EmailFields) All() []EmailField {
	out := make([]EmailField, 0, len(e.keys))
	for _, k := range e.keys {
		out = append(out, e.fields[k])
	}
	return out
}

// Clone returns an independent copy
func (e EmailFields) Clone() EmailFields {
	out := NewEmailFields()
	for _, k := range e.keys {
		out.Set(k, e.fields[k])
	}
	return out
}
