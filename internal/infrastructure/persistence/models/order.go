package models

import (
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vatid/backend/internal/domain/checkout"
)

// BillingColumns is the billing address embedded in the orders table
type BillingColumns struct {
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Company   string `gorm:"type:varchar(200)"`
	Address1  string `gorm:"column:address_1;type:varchar(255)"`
	Address2  string `gorm:"column:address_2;type:varchar(255)"`
	City      string `gorm:"type:varchar(100)"`
	State     string `gorm:"type:varchar(100)"`
	Postcode  string `gorm:"type:varchar(20)"`
	Country   string `gorm:"type:varchar(2)"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(50)"`
}

// OrderModel is the persistence model for the checkout Order
type OrderModel struct {
	BaseModel
	Number        string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status        string           `gorm:"type:varchar(20);not null;index"`
	Currency      string           `gorm:"type:varchar(3);not null"`
	Total         decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	CustomerEmail string           `gorm:"type:varchar(255)"`
	Variant       string           `gorm:"type:varchar(20)"`
	Billing       BillingColumns   `gorm:"embedded;embeddedPrefix:billing_"`
	Meta          []OrderMetaModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderMetaModel is one row of the generic order meta store
type OrderMetaModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_meta_order_key"`
	MetaKey   string    `gorm:"type:varchar(191);not null;uniqueIndex:idx_order_meta_order_key"`
	MetaValue string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (OrderMetaModel) TableName() string {
	return "order_meta"
}

// OrderModelFromDomain converts a domain Order to its persistence model.
// Meta rows are emitted in key order.
func OrderModelFromDomain(o *checkout.Order) *OrderModel {
	m := &OrderModel{
		Number:        o.Number,
		Status:        string(o.Status),
		Currency:      o.Currency,
		Total:         o.Total,
		CustomerEmail: o.CustomerEmail,
		Variant:       string(o.Variant),
		Billing: BillingColumns{
			FirstName: o.Billing.FirstName,
			LastName:  o.Billing.LastName,
			Company:   o.Billing.Company,
			Address1:  o.Billing.Address1,
			Address2:  o.Billing.Address2,
			City:      o.Billing.City,
			State:     o.Billing.State,
			Postcode:  o.Billing.Postcode,
			Country:   o.Billing.Country,
			Email:     o.Billing.Email,
			Phone:     o.Billing.Phone,
		},
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for _, k := range slices.Sorted(maps.Keys(o.Meta)) {
		m.Meta = append(m.Meta, OrderMetaModel{OrderID: o.ID, MetaKey: k, MetaValue: o.Meta[k]})
	}
	return m
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *checkout.Order {
	o := &checkout.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		Number:        m.Number,
		Status:        checkout.OrderStatus(m.Status),
		Currency:      m.Currency,
		Total:         m.Total,
		CustomerEmail: m.CustomerEmail,
		Variant:       checkout.CheckoutVariant(m.Variant),
		Billing: checkout.BillingAddress{
			FirstName: m.Billing.FirstName,
			LastName:  m.Billing.LastName,
			Company:   m.Billing.Company,
			Address1:  m.Billing.Address1,
			Address2:  m.Billing.Address2,
			City:      m.Billing.City,
			State:     m.Billing.State,
			Postcode:  m.Billing.Postcode,
			Country:   m.Billing.Country,
			Email:     m.Billing.Email,
			Phone:     m.Billing.Phone,
		},
		Meta: make(map[string]string, len(m.Meta)),
	}
	for _, row := range m.Meta {
		o.Meta[row.MetaKey] = row.MetaValue
	}
	return o
}

// All returns every model managed by the service, for AutoMigrate in tests
func All() []any {
	return []any{&OrderModel{}, &OrderMetaModel{}}
}
