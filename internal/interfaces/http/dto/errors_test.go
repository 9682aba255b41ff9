package dto

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatid/backend/internal/domain/shared"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeValidationRequired, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{shared.ErrNotFound.Code, ErrCodeNotFound},
		{shared.ErrInvalidInput.Code, ErrCodeInvalidInput},
		{shared.ErrInvalidState.Code, ErrCodeInvalidState},
		{"INVALID_TOTAL", ErrCodeInvalidInput},
		// API codes pass through unchanged
		{ErrCodeNotFound, ErrCodeNotFound},
		{"CUSTOM_ERROR", "CUSTOM_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestErrorCodeConstants(t *testing.T) {
	for _, code := range LegacyErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "code %s should have an HTTP status", code)
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Order not found", "req-1")

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_NOT_FOUND","message":"Order not found","request_id":"req-1"}}`, string(b))

	v := NewValidationErrorResponse("Request validation failed", "", []ValidationDetail{{Field: "billing_email", Message: "is required"}})
	assert.Equal(t, ErrCodeValidation, v.Error.Code)
	assert.Len(t, v.Error.Details, 1)
}

func TestParseClassicCheckout(t *testing.T) {
	values := url.Values{
		"billing_first_name": {"Ada"},
		"billing_last_name":  {"Lovelace"},
		"billing_address_1":  {"1 Analytical Way"},
		"billing_city":       {"London"},
		"billing_country":    {"gb"},
		"billing_email":      {"ada@example.com"},
		"vat_number":         {"DE123"},
		"total":              {"119.00"},
	}

	req, details := ParseClassicCheckout(values)
	assert.Empty(t, details)
	assert.Equal(t, "GB", req.Billing.Country)
	assert.True(t, decimal.RequireFromString("119").Equal(req.Total))

	vat, ok := req.Form.Value("vat_number")
	assert.True(t, ok)
	assert.Equal(t, "DE123", vat)
}

func TestParseClassicCheckout_Invalid(t *testing.T) {
	_, details := ParseClassicCheckout(url.Values{"total": {"abc"}})

	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "billing_email")
	assert.Contains(t, fields, "billing_first_name")
	assert.Contains(t, fields, "total")
}

func TestBlockCheckoutRequest_FormData(t *testing.T) {
	var req BlockCheckoutRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"billing_address": {"first_name": "Ada"},
		"extensions": {
			"namespace/vatid-free": "FR123",
			"other/number": 42,
			"other/vat": 123456789,
			"other/decimal": 1e3,
			"other/flag": false,
			"other/null": null,
			"other/list": ["x"],
			"other/nested": {"a": 1}
		}
	}`), &req))

	fd := req.FormData()
	v, ok := fd.Extension("namespace/vatid-free")
	assert.True(t, ok)
	assert.Equal(t, "FR123", v)

	v, ok = fd.Extension("other/number")
	assert.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = fd.Extension("other/vat")
	assert.True(t, ok)
	assert.Equal(t, "123456789", v)

	v, _ = fd.Extension("other/decimal")
	assert.Equal(t, "1e3", v)

	v, _ = fd.Extension("other/flag")
	assert.Equal(t, "false", v)

	for _, id := range []string{"other/null", "other/list", "other/nested"} {
		_, ok = fd.Extension(id)
		assert.False(t, ok, id)
	}
	assert.Empty(t, fd.Fields)
}
