package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vatid/backend/internal/domain/checkout"
)

func newStoredOrder(t *testing.T, vat string) *checkout.Order {
	t.Helper()
	order, err := checkout.NewOrder("WC-2002", "ada@example.com", "EUR", decimal.RequireFromString("1234.5"), checkout.BillingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address1:  "1 Analytical Way",
		City:      "London",
		Country:   "GB",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)
	if vat != "" {
		order.UpdateMetaData("vat_number", vat)
	}
	return order
}

func TestOrderHandler_GetOrder(t *testing.T) {
	s := newStorefront(t, false)
	order := newStoredOrder(t, "DE123")
	s.repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	w := s.do(httptest.NewRequest("GET", "/api/v1/orders/"+order.ID.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "WC-2002", data["number"])
	assert.Equal(t, "DE123", data["meta"].(map[string]any)["vat_number"])
}

func TestOrderHandler_NotFound(t *testing.T) {
	s := newStorefront(t, false)
	order := newStoredOrder(t, "")
	s.repo.On("FindByID", mock.Anything, order.ID).Return(nil, checkout.ErrOrderNotFound)

	for _, path := range []string{
		"/api/v1/orders/" + order.ID.String(),
		"/api/v1/orders/" + order.ID.String() + "/meta",
		"/api/v1/orders/" + order.ID.String() + "/email-fields",
		"/api/v1/orders/" + order.ID.String() + "/email",
		"/admin/orders/" + order.ID.String(),
	} {
		w := s.do(httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "ERR_NOT_FOUND", decodeResponse(t, w).Error.Code, path)
	}
}

func TestOrderHandler_InvalidID(t *testing.T) {
	s := newStorefront(t, false)

	w := s.do(httptest.NewRequest("GET", "/api/v1/orders/12345/meta", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	s.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestOrderHandler_GetOrderMeta(t *testing.T) {
	s := newStorefront(t, false)
	order := newStoredOrder(t, "NL123456789B01")
	s.repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	w := s.do(httptest.NewRequest("GET", "/api/v1/orders/"+order.ID.String()+"/meta", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"vat_number": "NL123456789B01"}, decodeResponse(t, w).Data)
}

func TestOrderHandler_GetEmailFields(t *testing.T) {
	t.Run("with VAT number", func(t *testing.T) {
		s := newStorefront(t, false)
		order := newStoredOrder(t, "DE123")
		s.repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		w := s.do(httptest.NewRequest("GET", "/api/v1/orders/"+order.ID.String()+"/email-fields?sent_to_admin=true", nil))

		require.Equal(t, http.StatusOK, w.Code)
		rows := decodeResponse(t, w).Data.([]any)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		assert.Equal(t, "vat_number", row["key"])
		assert.Equal(t, "VAT Number", row["label"])
		assert.Equal(t, "DE123", row["value"])
	})

	t.Run("without VAT number", func(t *testing.T) {
		s := newStorefront(t, false)
		order := newStoredOrder(t, "")
		s.repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		w := s.do(httptest.NewRequest("GET", "/api/v1/orders/"+order.ID.String()+"/email-fields", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeResponse(t, w).Data)
	})

	t.Run("invalid flag", func(t *testing.T) {
		s := newStorefront(t, false)
		order := newStoredOrder(t, "")

		w := s.do(httptest.NewRequest("GET", "/api/v1/orders/"+order.ID.String()+"/email-fields?sent_to_admin=maybe", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandler_PreviewEmail(t *testing.T) {
	s := newStorefront(t, false)
	order := newStoredOrder(t, "DE123")
	s.repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	w := s.do(httptest.NewRequest("GET", "/api/v1/orders/"+order.ID.String()+"/email", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<p><strong>VAT Number:</strong> DE123</p>")
}

func TestStorefrontHandler_AdminOrderPage(t *testing.T) {
	s := newStorefront(t, false)
	order := newStoredOrder(t, `DE<script>alert(1)</script>`)
	s.repo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	w := s.do(httptest.NewRequest("GET", "/admin/orders/"+order.ID.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<p><strong>VAT Number:</strong> DE&lt;script&gt;alert(1)&lt;/script&gt;</p>")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "1,234.50 EUR")
}

func TestStorefrontHandler_CheckoutPage(t *testing.T) {
	t.Run("classic", func(t *testing.T) {
		s := newStorefront(t, false)

		w := s.do(httptest.NewRequest("GET", "/checkout", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="vat_number"`)
		assert.NotContains(t, w.Body.String(), "wp-block-woocommerce-checkout")
	})

	t.Run("block", func(t *testing.T) {
		s := newStorefront(t, true)

		w := s.do(httptest.NewRequest("GET", "/checkout", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "wp-block-woocommerce-checkout")
		assert.Contains(t, w.Body.String(), "namespace/vatid-free")
	})
}
