// Package vatfield adds an optional VAT Number field to both checkout
// variants, stores the submitted value as order meta data and shows it on the
// admin order page and in order emails.
package vatfield

import (
	"github.com/vatid/backend/internal/infrastructure/logger"
	"github.com/vatid/backend/internal/infrastructure/sanitize"
)

const (
	// ExtensionName identifies the extension in the plugin manager
	ExtensionName = "wc-vatid-free"

	// MetaKey is the order meta key holding the VAT annotation
	MetaKey = "vat_number"
	// ClassicFieldKey is the billing field key on the classic checkout
	ClassicFieldKey = "vat_number"
	// BlockFieldID is the namespaced id registered with the block checkout
	BlockFieldID = "namespace/vatid-free"

	Label       = "VAT Number"
	Placeholder = "Enter your VAT Number"
	Priority    = 120

	// LogPrefix tags every diagnostic line of the extension
	LogPrefix = logger.DebugPrefix
)

// Sanitizer turns a raw submitted value into plain text
type Sanitizer interface {
	SanitizeText(raw string) string
}

// Extension implements the checkout hook contracts for the VAT Number field.
// It holds no per-request state and is safe for concurrent use.
type Extension struct {
	log       logger.DebugLogger
	sanitizer Sanitizer
}

// Option configures an Extension
type Option func(*Extension)

// WithLogger sets the diagnostic logger
func WithLogger(l logger.DebugLogger) Option {
	return func(e *Extension) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSanitizer sets the sanitizer applied to submitted values
func WithSanitizer(s Sanitizer) Option {
	return func(e *Extension) {
		if s != nil {
			e.sanitizer = s
		}
	}
}

// New creates the extension. Without options it logs nothing and sanitizes
// submitted values with sanitize.TextSanitizer.
func New(opts ...Option) *Extension {
	e := &Extension{
		log:       logger.NopDebugLogger{},
		sanitizer: sanitize.NewTextSanitizer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log.Debugf("Plugin initialized.")
	return e
}

// Name implements plugin.Extension
func (e *Extension) Name() string {
	return ExtensionName
}
