package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vatid/backend/internal/domain/checkout"
	"github.com/vatid/backend/internal/domain/shared"
	"github.com/vatid/backend/internal/infrastructure/cache"
	"github.com/vatid/backend/internal/infrastructure/logger"
	"github.com/vatid/backend/internal/infrastructure/render"
	"github.com/vatid/backend/internal/infrastructure/telemetry"
)

// Mailer delivers rendered notification mails
type Mailer interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
}

// OrderRenderer renders order pages and mails
type OrderRenderer interface {
	AdminOrder(page render.AdminOrderPage) (string, error)
	OrderEmail(mail render.OrderEmail) (string, error)
}

// OrderServiceConfig holds the storefront settings used when placing orders
type OrderServiceConfig struct {
	ShopName       string
	Currency       string
	OrderPrefix    string
	AdminRecipient string
	CacheTTL       time.Duration
}

// OrderService places orders and builds the order views
type OrderService struct {
	repo      checkout.OrderRepository
	hooks     Hooks
	renderer  OrderRenderer
	mailer    Mailer
	metaCache cache.OrderMetaCache
	cfg       OrderServiceConfig
	logger    *zap.Logger
	newNumber func() string
}

// OrderServiceOption configures an OrderService
type OrderServiceOption func(*OrderService)

// WithMailer sets the notification mailer
func WithMailer(m Mailer) OrderServiceOption {
	return func(s *OrderService) {
		if m != nil {
			s.mailer = m
		}
	}
}

// WithMetaCache sets the order meta cache
func WithMetaCache(c cache.OrderMetaCache) OrderServiceOption {
	return func(s *OrderService) {
		if c != nil {
			s.metaCache = c
		}
	}
}

// WithOrderLogger sets the service logger
func WithOrderLogger(l *zap.Logger) OrderServiceOption {
	return func(s *OrderService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithNumberGenerator overrides how order numbers are generated
func WithNumberGenerator(fn func() string) OrderServiceOption {
	return func(s *OrderService) {
		if fn != nil {
			s.newNumber = fn
		}
	}
}

// NewOrderService creates a new OrderService
func NewOrderService(repo checkout.OrderRepository, hooks Hooks, renderer OrderRenderer, cfg OrderServiceConfig, opts ...OrderServiceOption) *OrderService {
	if cfg.OrderPrefix == "" {
		cfg.OrderPrefix = "WC"
	}
	if cfg.ShopName == "" {
		cfg.ShopName = "Shop"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}

	s := &OrderService{
		repo:      repo,
		hooks:     hooks,
		renderer:  renderer,
		mailer:    noopMailer{},
		metaCache: cache.NopOrderMetaCache{},
		cfg:       cfg,
		logger:    zap.NewNop(),
	}
	s.newNumber = func() string {
		return s.cfg.OrderPrefix + "-" + strings.ToUpper(uuid.NewString()[:8])
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

type noopMailer struct{}

func (noopMailer) Send(context.Context, []string, string, string) error { return nil }

// PlaceOrder creates an order from a checkout submission. The order creation
// hooks run once, before the order is persisted, so their meta is saved with
// the order. Notification failures never fail the order.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*checkout.Order, error) {
	if req.Variant == "" {
		req.Variant = checkout.VariantClassic
	}
	ctx, span := telemetry.StartSpan(ctx, "checkout.place_order",
		attribute.String("checkout.variant", req.Variant.String()),
	)
	defer span.End()

	if !req.Variant.IsValid() {
		err := fmt.Errorf("%w: unknown checkout variant %q", shared.ErrInvalidInput, req.Variant)
		telemetry.RecordError(span, err)
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = strings.TrimSpace(req.Billing.Email)
	}
	if req.Billing.Email == "" {
		req.Billing.Email = email
	}

	order, err := checkout.NewOrder(s.newNumber(), email, s.cfg.Currency, req.Total, req.Billing)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	order.Variant = req.Variant

	ctx = logger.WithOrderID(ctx, order.ID.String())
	s.hooks.CreateOrder(ctx, order, req.Form)

	if err := order.SetStatus(checkout.OrderStatusProcessing); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.repo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID.String()),
		attribute.String("order.number", order.Number),
		attribute.Int("order.meta_count", len(order.Meta)),
	)

	s.cacheMeta(ctx, order)
	s.notify(ctx, order)

	logger.WithLogger(ctx, s.logger).Info("Order placed",
		zap.String("number", order.Number),
		zap.String("variant", order.Variant.String()),
	)
	return order, nil
}

// GetOrder loads an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*checkout.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// OrderMeta returns an order's meta data, served from the cache when possible
func (s *OrderService) OrderMeta(ctx context.Context, id uuid.UUID) (map[string]string, error) {
	meta, ok, err := s.metaCache.Get(ctx, id.String())
	if err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Order meta cache read failed",
			zap.String("order_id", id.String()), zap.Error(err))
	}
	if ok {
		return meta, nil
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheMeta(ctx, order)
	return copyMeta(order.Meta), nil
}

// AdminOrderView renders the admin order page: the billing block followed by
// the fragments of the extensions
func (s *OrderService) AdminOrderView(ctx context.Context, id uuid.UUID) (string, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	page := render.AdminOrderPage{
		Number:    order.Number,
		Status:    order.Status,
		Variant:   order.Variant,
		CreatedAt: order.CreatedAt,
		Total:     order.Total,
		Currency:  order.Currency,
		Billing:   order.Billing,
	}
	if fragment := s.hooks.RenderAfterBillingAddress(ctx, order); fragment != "" {
		page.Fragments = append(page.Fragments, fragment)
	}
	return s.renderer.AdminOrder(page)
}

// EmailFields returns the extra fields scheduled for an order email
func (s *OrderService) EmailFields(ctx context.Context, id uuid.UUID, sentToAdmin bool) (checkout.EmailFields, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return checkout.EmailFields{}, err
	}
	return s.emailFields(ctx, order, sentToAdmin), nil
}

// RenderEmail renders the notification mail of an order
func (s *OrderService) RenderEmail(ctx context.Context, id uuid.UUID, sentToAdmin bool) (string, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	_, body, err := s.renderEmail(ctx, order, sentToAdmin)
	return body, err
}

func (s *OrderService) emailFields(ctx context.Context, order *checkout.Order, sentToAdmin bool) checkout.EmailFields {
	return s.hooks.FilterEmailMetaFields(ctx, checkout.NewEmailFields(), sentToAdmin, order)
}

func (s *OrderService) renderEmail(ctx context.Context, order *checkout.Order, sentToAdmin bool) (string, string, error) {
	subject := fmt.Sprintf("Your %s order #%s has been received!", s.cfg.ShopName, order.Number)
	heading := "Thank you for your order"
	if sentToAdmin {
		subject = fmt.Sprintf("[%s]: New order #%s", s.cfg.ShopName, order.Number)
		heading = "New order: #" + order.Number
	}

	body, err := s.renderer.OrderEmail(render.OrderEmail{
		Subject:     subject,
		Heading:     heading,
		SentToAdmin: sentToAdmin,
		Number:      order.Number,
		CreatedAt:   order.CreatedAt,
		Total:       order.Total,
		Currency:    order.Currency,
		Billing:     order.Billing,
		Fields:      s.emailFields(ctx, order, sentToAdmin).All(),
	})
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

// notify sends the customer and admin notification mails
func (s *OrderService) notify(ctx context.Context, order *checkout.Order) {
	log := logger.WithLogger(ctx, s.logger)

	send := func(to string, sentToAdmin bool) {
		if to == "" {
			return
		}
		subject, body, err := s.renderEmail(ctx, order, sentToAdmin)
		if err != nil {
			log.Error("Failed to render order email", zap.Bool("sent_to_admin", sentToAdmin), zap.Error(err))
			return
		}
		if err := s.mailer.Send(ctx, []string{to}, subject, body); err != nil {
			log.Warn("Failed to send order email",
				zap.String("to", to),
				zap.Bool("sent_to_admin", sentToAdmin),
				zap.Error(err),
			)
		}
	}

	send(order.CustomerEmail, false)
	send(s.cfg.AdminRecipient, true)
}

func (s *OrderService) cacheMeta(ctx context.Context, order *checkout.Order) {
	if err := s.metaCache.Set(ctx, order.ID.String(), order.Meta, s.cfg.CacheTTL); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("Order meta cache write failed", zap.Error(err))
	}
}

func copyMeta(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
