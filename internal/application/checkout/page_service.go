package checkout

import (
	"context"
	"fmt"
	"os"

	"github.com/vatid/backend/internal/domain/checkout"
	"github.com/vatid/backend/internal/infrastructure/render"
)

// PageRenderer renders the checkout page
type PageRenderer interface {
	CheckoutPage(page render.CheckoutPage) (string, error)
}

// PageServiceConfig holds the checkout page settings
type PageServiceConfig struct {
	CheckoutPath string
	ClassicPath  string // form action of the classic checkout
	BlockPath    string // store API endpoint of the block checkout
	// Content replaces the generated checkout page when set
	Content string
}

// PageService renders storefront pages and reports views to the extensions
type PageService struct {
	hooks    Hooks
	fields   *FieldService
	renderer PageRenderer
	cfg      PageServiceConfig
}

// NewPageService creates a new PageService
func NewPageService(hooks Hooks, fields *FieldService, renderer PageRenderer, cfg PageServiceConfig) *PageService {
	if cfg.CheckoutPath == "" {
		cfg.CheckoutPath = "/checkout"
	}
	return &PageService{hooks: hooks, fields: fields, renderer: renderer, cfg: cfg}
}

// LoadPageContent reads a checkout page template file. An empty path
// yields empty content.
func LoadPageContent(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read checkout page template: %w", err)
	}
	return string(b), nil
}

// View detects the checkout variant of rendered content and notifies the
// page view observers
func (s *PageService) View(ctx context.Context, path, content string) checkout.PageView {
	view := checkout.PageView{
		Path:       path,
		IsCheckout: path == s.cfg.CheckoutPath,
		Variant:    checkout.DetectVariant(content),
	}
	s.hooks.PageView(ctx, view)
	return view
}

// CheckoutPage renders the checkout page and records the view
func (s *PageService) CheckoutPage(ctx context.Context) (string, checkout.PageView, error) {
	content := s.cfg.Content
	if content == "" {
		page := render.CheckoutPage{
			Block:  s.fields.BlockEnabled(),
			Action: s.cfg.ClassicPath,
		}
		if page.Block {
			page.Action = s.cfg.BlockPath
			page.BlockFields = s.fields.BlockFields()
		} else {
			page.Fields = s.fields.ClassicFields(ctx).Sorted(checkout.SectionBilling)
		}

		rendered, err := s.renderer.CheckoutPage(page)
		if err != nil {
			return "", checkout.PageView{}, err
		}
		content = rendered
	}

	return content, s.View(ctx, s.cfg.CheckoutPath, content), nil
}
