package vatfield

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatid/backend/internal/domain/checkout"
	"github.com/vatid/backend/internal/domain/shared/plugin"
	"github.com/vatid/backend/internal/infrastructure/sanitize"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Debugf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *recordingLogger) contains(s string) bool {
	for _, l := range r.lines {
		if strings.Contains(l, s) {
			return true
		}
	}
	return false
}

type stubRegistrar struct {
	fields []checkout.AdditionalField
	err    error
}

func (s *stubRegistrar) RegisterAdditionalField(f checkout.AdditionalField) error {
	if s.err != nil {
		return s.err
	}
	s.fields = append(s.fields, f)
	return nil
}

func newTestExtension(t *testing.T) (*Extension, *recordingLogger) {
	t.Helper()
	log := &recordingLogger{}
	return New(WithLogger(log), WithSanitizer(sanitize.NewTextSanitizer())), log
}

func newTestOrder(t *testing.T) *checkout.Order {
	t.Helper()
	order, err := checkout.NewOrder("WC-1001", "shopper@example.com", "EUR", decimal.NewFromInt(42), checkout.BillingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Country:   "DE",
	})
	require.NoError(t, err)
	return order
}

func TestExtension_ImplementsHooks(t *testing.T) {
	var ext any = New()
	_, ok := ext.(plugin.Extension)
	assert.True(t, ok)
	_, ok = ext.(plugin.CheckoutFieldsFilter)
	assert.True(t, ok)
	_, ok = ext.(plugin.BlockFieldRegistrant)
	assert.True(t, ok)
	_, ok = ext.(plugin.OrderCreateHook)
	assert.True(t, ok)
	_, ok = ext.(plugin.AdminOrderRenderer)
	assert.True(t, ok)
	_, ok = ext.(plugin.EmailMetaFieldsFilter)
	assert.True(t, ok)
	_, ok = ext.(plugin.PageViewObserver)
	assert.True(t, ok)
}

func TestNew_LogsInitialization(t *testing.T) {
	_, log := newTestExtension(t)
	assert.Equal(t, []string{"Plugin initialized."}, log.lines)
}

func TestNew_NilOptionsKeepDefaults(t *testing.T) {
	ext := New(WithLogger(nil), WithSanitizer(nil))
	assert.NotNil(t, ext.log)
	assert.NotNil(t, ext.sanitizer)
	assert.Equal(t, ExtensionName, ext.Name())
}

func TestFilterCheckoutFields(t *testing.T) {
	ext, log := newTestExtension(t)
	in := checkout.DefaultFieldSet()
	before := in.Keys(checkout.SectionBilling)

	out := ext.FilterCheckoutFields(context.Background(), in)

	def, ok := out.Get(checkout.SectionBilling, ClassicFieldKey)
	require.True(t, ok)
	assert.Equal(t, checkout.FieldTypeText, def.Type)
	assert.Equal(t, "VAT Number", def.Label)
	assert.Equal(t, "Enter your VAT Number", def.Placeholder)
	assert.False(t, def.Required)
	assert.Equal(t, []string{"form-row-wide"}, def.Class)
	assert.Equal(t, 120, def.Priority)

	// existing fields keep their order, the new one is appended
	assert.Equal(t, append(before, ClassicFieldKey), out.Keys(checkout.SectionBilling))
	sorted := out.Sorted(checkout.SectionBilling)
	assert.Equal(t, ClassicFieldKey, sorted[len(sorted)-1].Key)

	// input untouched
	assert.False(t, in.Has(checkout.SectionBilling, ClassicFieldKey))
	assert.Equal(t, in.Len(checkout.SectionShipping), out.Len(checkout.SectionShipping))
	assert.True(t, log.contains("Adding VAT field to classic checkout fields."))
}

func TestFilterCheckoutFields_EmptySet(t *testing.T) {
	ext, _ := newTestExtension(t)
	out := ext.FilterCheckoutFields(context.Background(), checkout.FieldSet{})
	assert.Equal(t, []string{ClassicFieldKey}, out.Keys(checkout.SectionBilling))
}

func TestRegisterBlockFields(t *testing.T) {
	t.Run("registers the descriptor", func(t *testing.T) {
		ext, log := newTestExtension(t)
		reg := &stubRegistrar{}

		ext.RegisterBlockFields(context.Background(), reg)

		require.Len(t, reg.fields, 1)
		f := reg.fields[0]
		assert.Equal(t, "namespace/vatid-free", f.ID)
		assert.Equal(t, "VAT Number", f.Label)
		assert.Equal(t, checkout.LocationAddress, f.Location)
		assert.Equal(t, "text", f.Type)
		assert.False(t, f.Required)
		assert.Equal(t, "Enter your VAT Number", f.Attributes["placeholder"])
		assert.NoError(t, f.Validate())
		assert.True(t, log.contains("Registering VAT field for block checkout."))
	})

	// Scenario D
	t.Run("missing capability is logged and skipped", func(t *testing.T) {
		ext, log := newTestExtension(t)

		assert.NotPanics(t, func() {
			ext.RegisterBlockFields(context.Background(), nil)
		})
		assert.True(t, log.contains("woocommerce_register_additional_checkout_field not available"))

		// classic field still registers
		out := ext.FilterCheckoutFields(context.Background(), checkout.DefaultFieldSet())
		assert.True(t, out.Has(checkout.SectionBilling, ClassicFieldKey))
	})

	t.Run("registrar error is logged only", func(t *testing.T) {
		ext, log := newTestExtension(t)
		reg := &stubRegistrar{err: errors.New("duplicate field")}

		assert.NotPanics(t, func() {
			ext.RegisterBlockFields(context.Background(), reg)
		})
		assert.True(t, log.contains("duplicate field"))
	})
}

func TestOnPageView(t *testing.T) {
	tests := []struct {
		name string
		view checkout.PageView
		want string
	}{
		{"block checkout", checkout.PageView{Path: "/checkout", IsCheckout: true, Variant: checkout.VariantBlock}, "Detected BLOCK checkout."},
		{"classic checkout", checkout.PageView{Path: "/checkout", IsCheckout: true, Variant: checkout.VariantClassic}, "Detected CLASSIC checkout."},
		{"other page", checkout.PageView{Path: "/shop"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, log := newTestExtension(t)
			log.lines = nil

			ext.OnPageView(context.Background(), tt.view)

			if tt.want == "" {
				assert.Empty(t, log.lines)
				return
			}
			assert.Equal(t, []string{tt.want}, log.lines)
		})
	}
}

func TestOnCreateOrder(t *testing.T) {
	tests := []struct {
		name       string
		form       checkout.FormData
		wantVAT    string
		wantLog    string
		wantAbsent bool
	}{
		{
			name:    "scenario A classic field",
			form:    checkout.NewFormData(map[string]string{"vat_number": "DE123456789"}, nil),
			wantVAT: "DE123456789",
			wantLog: "Saving VAT number from classic checkout: DE123456789",
		},
		{
			name:    "scenario B block extension value",
			form:    checkout.NewFormData(nil, map[string]string{BlockFieldID: "FR987654321"}),
			wantVAT: "FR987654321",
			wantLog: "Saving VAT number from block checkout: FR987654321",
		},
		{
			name:       "scenario C both empty",
			form:       checkout.NewFormData(map[string]string{"vat_number": ""}, map[string]string{BlockFieldID: "  "}),
			wantAbsent: true,
			wantLog:    "No VAT number found in POST data.",
		},
		{
			name:       "nothing submitted",
			form:       checkout.FormData{},
			wantAbsent: true,
			wantLog:    "No VAT number found in POST data.",
		},
		{
			name: "top-level takes precedence",
			form: checkout.NewFormData(
				map[string]string{"vat_number": "DE111"},
				map[string]string{BlockFieldID: "FR222"},
			),
			wantVAT: "DE111",
			wantLog: "classic checkout",
		},
		{
			name: "empty top-level falls back to extension",
			form: checkout.NewFormData(
				map[string]string{"vat_number": "   "},
				map[string]string{BlockFieldID: "FR222"},
			),
			wantVAT: "FR222",
			wantLog: "block checkout",
		},
		{
			name:    "markup is stripped before storage",
			form:    checkout.NewFormData(map[string]string{"vat_number": "<script>x</script>123456789"}, nil),
			wantVAT: "123456789",
		},
		{
			name:       "markup-only value is treated as empty",
			form:       checkout.NewFormData(map[string]string{"vat_number": "<b></b>"}, nil),
			wantAbsent: true,
		},
		{
			name:    "no format validation",
			form:    checkout.NewFormData(map[string]string{"vat_number": "not a vat"}, nil),
			wantVAT: "not a vat",
		},
		{
			name:    "classic form with bracketed extension key",
			form:    checkout.FormDataFromValues(url.Values{"extensions[namespace/vatid-free]": {"AT U123"}}),
			wantVAT: "AT U123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, log := newTestExtension(t)
			order := newTestOrder(t)

			ext.OnCreateOrder(context.Background(), order, tt.form)

			if tt.wantAbsent {
				assert.False(t, order.HasMeta(MetaKey))
			} else {
				assert.Equal(t, tt.wantVAT, order.GetMeta(MetaKey))
			}
			if tt.wantLog != "" {
				assert.True(t, log.contains(tt.wantLog), "log lines: %v", log.lines)
			}
		})
	}
}

func TestOnCreateOrder_NeverOverwrites(t *testing.T) {
	ext, _ := newTestExtension(t)
	order := newTestOrder(t)
	order.UpdateMetaData(MetaKey, "DE123456789")

	ext.OnCreateOrder(context.Background(), order, checkout.NewFormData(map[string]string{"vat_number": "FR1"}, nil))

	assert.Equal(t, "DE123456789", order.GetMeta(MetaKey))
}

func TestOnCreateOrder_NilOrder(t *testing.T) {
	ext, _ := newTestExtension(t)
	assert.NotPanics(t, func() {
		ext.OnCreateOrder(context.Background(), nil, checkout.FormData{})
	})
}

func TestRenderAfterBillingAddress(t *testing.T) {
	ctx := context.Background()

	t.Run("present", func(t *testing.T) {
		ext, log := newTestExtension(t)
		order := newTestOrder(t)
		order.UpdateMetaData(MetaKey, "DE123456789")

		got := ext.RenderAfterBillingAddress(ctx, order)

		assert.Equal(t, template.HTML("<p><strong>VAT Number:</strong> DE123456789</p>"), got)
		assert.True(t, log.contains("Admin order view — VAT: DE123456789"))
	})

	t.Run("absent renders nothing", func(t *testing.T) {
		ext, log := newTestExtension(t)
		assert.Empty(t, ext.RenderAfterBillingAddress(ctx, newTestOrder(t)))
		assert.Empty(t, ext.RenderAfterBillingAddress(ctx, nil))
		assert.True(t, log.contains("Admin order view — VAT: none"))
	})

	t.Run("value is escaped", func(t *testing.T) {
		ext, _ := newTestExtension(t)
		order := newTestOrder(t)
		order.UpdateMetaData(MetaKey, `<img src=x onerror="alert(1)">&`)

		got := string(ext.RenderAfterBillingAddress(ctx, order))

		assert.NotContains(t, got, "<img")
		assert.Contains(t, got, "&lt;img src=x onerror=&#34;alert(1)&#34;&gt;&amp;")
	})

	t.Run("idempotent", func(t *testing.T) {
		ext, _ := newTestExtension(t)
		order := newTestOrder(t)
		order.UpdateMetaData(MetaKey, "DE123456789")
		updated := order.GetUpdatedAt()

		first := ext.RenderAfterBillingAddress(ctx, order)
		second := ext.RenderAfterBillingAddress(ctx, order)

		assert.Equal(t, first, second)
		assert.Equal(t, updated, order.GetUpdatedAt())
		assert.Equal(t, []string{MetaKey}, order.MetaKeys())
	})
}

func TestFilterEmailMetaFields(t *testing.T) {
	ctx := context.Background()
	base := checkout.NewEmailFields()
	base.Set("gift_note", checkout.EmailField{Label: "Gift note", Value: "Happy birthday"})

	t.Run("present appends one entry for both recipients", func(t *testing.T) {
		ext, log := newTestExtension(t)
		order := newTestOrder(t)
		order.UpdateMetaData(MetaKey, "DE123456789")

		for _, sentToAdmin := range []bool{true, false} {
			out := ext.FilterEmailMetaFields(ctx, base, sentToAdmin, order)

			assert.Equal(t, base.Len()+1, out.Len())
			assert.Equal(t, []string{"gift_note", MetaKey}, out.Keys())
			f, ok := out.Get(MetaKey)
			require.True(t, ok)
			assert.Equal(t, checkout.EmailField{Label: "VAT Number", Value: "DE123456789"}, f)
		}
		assert.Equal(t, 1, base.Len())
		assert.True(t, log.contains("Adding VAT to email meta: DE123456789"))
	})

	t.Run("absent returns the set unchanged", func(t *testing.T) {
		ext, log := newTestExtension(t)

		out := ext.FilterEmailMetaFields(ctx, base, false, newTestOrder(t))

		assert.Equal(t, base.Len(), out.Len())
		assert.Equal(t, base.Keys(), out.Keys())
		assert.True(t, log.contains("Adding VAT to email meta: none"))
	})

	t.Run("idempotent", func(t *testing.T) {
		ext, _ := newTestExtension(t)
		order := newTestOrder(t)
		order.UpdateMetaData(MetaKey, "DE123456789")

		first := ext.FilterEmailMetaFields(ctx, base, true, order)
		second := ext.FilterEmailMetaFields(ctx, base, true, order)

		assert.Equal(t, first.All(), second.All())
	})
}

func TestRoundTrip_MarkupIsNeutralised(t *testing.T) {
	ctx := context.Background()
	ext, _ := newTestExtension(t)
	order := newTestOrder(t)

	ext.OnCreateOrder(ctx, order, checkout.NewFormData(map[string]string{"vat_number": "<script>x</script>123456789"}, nil))
	require.Equal(t, "123456789", order.GetMeta(MetaKey))

	html := string(ext.RenderAfterBillingAddress(ctx, order))
	assert.Equal(t, "<p><strong>VAT Number:</strong> 123456789</p>", html)
	assert.NotContains(t, html, "<script")
}

func TestWithoutDebugLogger_IsSilent(t *testing.T) {
	ext := New()
	order := newTestOrder(t)

	ext.OnCreateOrder(context.Background(), order, checkout.NewFormData(map[string]string{"vat_number": "  DE 1\t2 "}, nil))

	assert.Equal(t, "DE 1 2", order.GetMeta(MetaKey))
}

func TestNew_DefaultSanitizerStripsMarkup(t *testing.T) {
	ctx := context.Background()
	ext := New()

	tests := []struct {
		name string
		form checkout.FormData
		want string
	}{
		{"classic", checkout.NewFormData(map[string]string{"vat_number": "<script>x</script>123456789"}, nil), "123456789"},
		{"block", checkout.NewFormData(nil, map[string]string{BlockFieldID: "<b>FR</b>12\n345"}), "FR12 345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := newTestOrder(t)
			ext.OnCreateOrder(ctx, order, tt.form)
			assert.Equal(t, tt.want, order.GetMeta(MetaKey))
		})
	}
}
