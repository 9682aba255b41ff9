package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vatid/backend/internal/domain/checkout"
)

func TestOrderModel_RoundTrip(t *testing.T) {
	order, err := checkout.NewOrder("WC-1", "a@example.com", "eur", decimal.RequireFromString("19.99"), checkout.BillingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Address1:  "Main St 1",
		City:      "Berlin",
		Postcode:  "10115",
		Country:   "DE",
	})
	require.NoError(t, err)
	order.Variant = checkout.VariantBlock
	order.UpdateMetaData("vat_number", "DE123456789")
	order.UpdateMetaData("_shipping_note", "leave at door")

	m := OrderModelFromDomain(order)

	assert.Equal(t, "orders", m.TableName())
	assert.Equal(t, order.ID, m.ID)
	assert.Equal(t, "EUR", m.Currency)
	assert.Equal(t, "block", m.Variant)
	assert.Equal(t, "Berlin", m.Billing.City)
	require.Len(t, m.Meta, 2)
	assert.Equal(t, "_shipping_note", m.Meta[0].MetaKey)
	assert.Equal(t, order.ID, m.Meta[1].OrderID)

	back := m.ToDomain()
	assert.Equal(t, order.ID, back.ID)
	assert.Equal(t, order.Number, back.Number)
	assert.Equal(t, order.Status, back.Status)
	assert.True(t, order.Total.Equal(back.Total))
	assert.Equal(t, order.Billing, back.Billing)
	assert.Equal(t, order.Meta, back.Meta)
}

func TestOrderModel_ToDomainWithoutMeta(t *testing.T) {
	m := &OrderModel{Number: "WC-2", Status: "pending"}
	o := m.ToDomain()
	assert.NotNil(t, o.Meta)
	assert.False(t, o.HasMeta("vat_number"))
}
