package plugin

import (
	"context"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"sync"

	"github.com/vatid/backend/internal/domain/checkout"
	"github.com/vatid/backend/internal/domain/shared"
)

// Manager keeps the registered extensions and dispatches lifecycle hooks to
// them in registration order.
type Manager struct {
	mu         sync.RWMutex
	extensions map[string]Extension
	order      []string
	booted     map[string]bool
}

// NewManager creates a new extension manager
func NewManager() *Manager {
	return &Manager{
		extensions: make(map[string]Extension),
		booted:     make(map[string]bool),
	}
}

// Register registers an extension
func (m *Manager) Register(ext Extension) error {
	if ext == nil {
		return fmt.Errorf("%w: extension cannot be nil", shared.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := ext.Name()
	if name == "" {
		return fmt.Errorf("%w: extension name cannot be empty", shared.ErrInvalidInput)
	}

	if _, exists := m.extensions[name]; exists {
		return fmt.Errorf("%w: extension '%s' already registered", shared.ErrAlreadyExists, name)
	}

	m.extensions[name] = ext
	m.order = append(m.order, name)
	return nil
}

// Get returns an extension by name
func (m *Manager) Get(name string) (Extension, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ext, exists := m.extensions[name]
	return ext, exists
}

// List returns all registered extension names
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.extensions))
	for name := range m.extensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes an extension (useful for testing)
func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.extensions[name]; !exists {
		return fmt.Errorf("%w: extension '%s' not found", shared.ErrNotFound, name)
	}

	delete(m.extensions, name)
	delete(m.booted, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of registered extensions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.extensions)
}

// snapshot returns the extensions in registration order
func (m *Manager) snapshot() []Extension {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Extension, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.extensions[name])
	}
	return out
}

// Boot lets every extension register its block checkout fields. Each
// extension is booted once; later calls only reach newly registered ones.
// A nil registrar means the block checkout is unavailable.
func (m *Manager) Boot(ctx context.Context, registrar checkout.FieldRegistrar) {
	m.mu.Lock()
	pending := make([]BlockFieldRegistrant, 0)
	for _, name := range m.order {
		if m.booted[name] {
			continue
		}
		m.booted[name] = true
		if r, ok := m.extensions[name].(BlockFieldRegistrant); ok {
			pending = append(pending, r)
		}
	}
	m.mu.Unlock()

	for _, r := range pending {
		r.RegisterBlockFields(ctx, registrar)
	}
}

// FilterCheckoutFields runs the classic checkout field filters
func (m *Manager) FilterCheckoutFields(ctx context.Context, fields checkout.FieldSet) checkout.FieldSet {
	for _, ext := range m.snapshot() {
		if f, ok := ext.(CheckoutFieldsFilter); ok {
			fields = f.FilterCheckoutFields(ctx, fields)
		}
	}
	return fields
}

// CreateOrder runs the order creation hooks against the order under construction
func (m *Manager) CreateOrder(ctx context.Context, order *checkout.Order, form checkout.FormData) {
	for _, ext := range m.snapshot() {
		if h, ok := ext.(OrderCreateHook); ok {
			h.OnCreateOrder(ctx, order, form)
		}
	}
}

// RenderAfterBillingAddress concatenates the admin fragments of all extensions
func (m *Manager) RenderAfterBillingAddress(ctx context.Context, order *checkout.Order) template.HTML {
	var b strings.Builder
	for _, ext := range m.snapshot() {
		if r, ok := ext.(AdminOrderRenderer); ok {
			b.WriteString(string(r.RenderAfterBillingAddress(ctx, order)))
		}
	}
	return template.HTML(b.String())
}

// FilterEmailMetaFields runs the email field filters
func (m *Manager) FilterEmailMetaFields(ctx context.Context, fields checkout.EmailFields, sentToAdmin bool, order *checkout.Order) checkout.EmailFields {
	for _, ext := range m.snapshot() {
		if f, ok := ext.(EmailMetaFieldsFilter); ok {
			fields = f.FilterEmailMetaFields(ctx, fields, sentToAdmin, order)
		}
	}
	return fields
}

// PageView notifies the page view observers
func (m *Manager) PageView(ctx context.Context, view checkout.PageView) {
	for _, ext := range m.snapshot() {
		if o, ok := ext.(PageViewObserver); ok {
			o.OnPageView(ctx, view)
		}
	}
}
