package checkout

import (
	"slices"
	"sort"
)

// Field types understood by the classic checkout renderer
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeCountry  = "country"
	FieldTypeState    = "state"
	FieldTypeTextarea = "textarea"
)

// Classic checkout sections
const (
	SectionBilling  = "billing"
	SectionShipping = "shipping"
	SectionAccount  = "account"
	SectionOrder    = "order"
)

// Layout classes used by the classic form
const (
	ClassRowFirst = "form-row-first"
	ClassRowLast  = "form-row-last"
	ClassRowWide  = "form-row-wide"
)

// FieldDefinition describes one input of the classic checkout form
type FieldDefinition struct {
	Type        string   `json:"type"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Class       []string `json:"class,omitempty"`
	Priority    int      `json:"priority"`
}

// KeyedField pairs a field definition with its key
type KeyedField struct {
	Key string `json:"key"`
	FieldDefinition
}

type fieldSection struct {
	keys   []string
	fields map[string]FieldDefinition
}

// FieldSet is the ordered collection of classic checkout field definitions,
// grouped by section. Insertion order is preserved; Set never reorders.
type FieldSet struct {
	sections []string
	bySec    map[string]*fieldSection
}

// NewFieldSet creates an empty field set
func NewFieldSet() FieldSet {
	return FieldSet{bySec: make(map[string]*fieldSection)}
}

func (fs *FieldSet) section(name string, create bool) *fieldSection {
	if fs.bySec == nil {
		if !create {
			return nil
		}
		fs.bySec = make(map[string]*fieldSection)
	}
	sec, ok := fs.bySec[name]
	if !ok && create {
		sec = &fieldSection{fields: make(map[string]FieldDefinition)}
		fs.bySec[name] = sec
		fs.sections = append(fs.sections, name)
	}
	return sec
}

// Set adds or replaces a field. New keys are appended to the section.
func (fs *FieldSet) Set(section, key string, def FieldDefinition) {
	sec := fs.section(section, true)
	if _, exists := sec.fields[key]; !exists {
		sec.keys = append(sec.keys, key)
	}
	def.Class = slices.Clone(def.Class)
	sec.fields[key] = def
}

// Get returns a field definition
func (fs FieldSet) Get(section, key string) (FieldDefinition, bool) {
	sec := fs.section(section, false)
	if sec == nil {
		return FieldDefinition{}, false
	}
	def, ok := sec.fields[key]
	return def, ok
}

// Has reports whether the section contains the key
func (fs FieldSet) Has(section, key string) bool {
	_, ok := fs.Get(section, key)
	return ok
}

// Sections returns the section names in insertion order
func (fs FieldSet) Sections() []string {
	return slices.Clone(fs.sections)
}

// Keys returns the keys of a section in insertion order
func (fs FieldSet) Keys(section string) []string {
	sec := fs.section(section, false)
	if sec == nil {
		return nil
	}
	return slices.Clone(sec.keys)
}

// Len returns the number of fields in a section
func (fs FieldSet) Len(section string) int {
	sec := fs.section(section, false)
	if sec == nil {
		return 0
	}
	return len(sec.keys)
}

// Sorted returns the fields of a section ordered by priority.
// Fields with equal priority keep their insertion order.
func (fs FieldSet) Sorted(section string) []KeyedField {
	sec := fs.section(section, false)
	if sec == nil {
		return nil
	}
	out := make([]KeyedField, 0, len(sec.keys))
	for _, k := range sec.keys {
		out = append(out, KeyedField{Key: k, FieldDefinition: sec.fields[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Clone returns a deep copy of the field set
func (fs FieldSet) Clone() FieldSet {
	out := NewFieldSet()
	for _, name := range fs.sections {
		sec := fs.bySec[name]
		dst := out.section(name, true)
		for _, k := range sec.keys {
			def := sec.fields[k]
			def.Class = slices.Clone(def.Class)
			dst.keys = append(dst.keys, k)
			dst.fields[k] = def
		}
	}
	return out
}

// DefaultFieldSet returns the platform's standard classic checkout fields.
// Billing priorities stay below 120 so extensions can append after them.
func DefaultFieldSet() FieldSet {
	fs := NewFieldSet()

	addressFields := func(section string) {
		fs.Set(section, section+"_first_name", FieldDefinition{Type: FieldTypeText, Label: "First name", Required: true, Class: []string{ClassRowFirst}, Priority: 10})
		fs.Set(section, section+"_last_name", FieldDefinition{Type: FieldTypeText, Label: "Last name", Required: true, Class: []string{ClassRowLast}, Priority: 20})
		fs.Set(section, section+"_company", FieldDefinition{Type: FieldTypeText, Label: "Company name", Class: []string{ClassRowWide}, Priority: 30})
		fs.Set(section, section+"_country", FieldDefinition{Type: FieldTypeCountry, Label: "Country / Region", Required: true, Class: []string{ClassRowWide}, Priority: 40})
		fs.Set(section, section+"_address_1", FieldDefinition{Type: FieldTypeText, Label: "Street address", Placeholder: "House number and street name", Required: true, Class: []string{ClassRowWide}, Priority: 50})
		fs.Set(section, section+"_address_2", FieldDefinition{Type: FieldTypeText, Label: "Apartment, suite, unit, etc.", Class: []string{ClassRowWide}, Priority: 60})
		fs.Set(section, section+"_city", FieldDefinition{Type: FieldTypeText, Label: "Town / City", Required: true, Class: []string{ClassRowWide}, Priority: 70})
		fs.Set(section, section+"_state", FieldDefinition{Type: FieldTypeState, Label: "State / County", Class: []string{ClassRowWide}, Priority: 80})
		fs.Set(section, section+"_postcode", FieldDefinition{Type: FieldTypeText, Label: "Postcode / ZIP", Required: true, Class: []string{ClassRowWide}, Priority: 90})
	}

	addressFields(SectionBilling)
	fs.Set(SectionBilling, "billing_phone", FieldDefinition{Type: FieldTypeTel, Label: "Phone", Required: true, Class: []string{ClassRowWide}, Priority: 100})
	fs.Set(SectionBilling, "billing_email", FieldDefinition{Type: FieldTypeEmail, Label: "Email address", Required: true, Class: []string{ClassRowWide}, Priority: 110})

	addressFields(SectionShipping)

	fs.Set(SectionOrder, "order_comments", FieldDefinition{
		Type:        FieldTypeTextarea,
		Label:       "Order notes",
		Placeholder: "Notes about your order, e.g. special notes for delivery.",
		Class:       []string{"notes"},
	})

	return fs
}
