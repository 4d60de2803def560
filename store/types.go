// Package store holds sample order types used by the mapper examples, tests and
// benchmarks.
package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is an enum; StatusNew and StatusPending share a value.
type OrderStatus int8

const (
	StatusNew OrderStatus = iota
	StatusPaid
	StatusShipped
	StatusCancelled OrderStatus = -1

	StatusPending = StatusNew
)

// Address is embedded by value in Customer.
type Address struct {
	Street     string
	City       string
	PostalCode string `qs:"zip"`
	Country    string
}

// Customer represents the user placing orders.
type Customer struct {
	ID       int64
	Email    string
	FullName string `qs:"name"`
	Address  Address
	IsActive bool
	Password string `qs:"-"`
}

// Category refers to itself. Parent is flattened one level deep when Category is the
// root and not at all when it is reached through another struct.
type Category struct {
	Code   string
	Parent *Category
}

// OrderItem is a line of an order. Orders carry items, which have no flat form.
type OrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order represents a transaction made by a customer.
type Order struct {
	ID        int64
	Status    OrderStatus
	Total     decimal.Decimal
	Discount  float64
	Currency  string
	Grade     rune
	Flags     byte
	OrderedAt time.Time
	Window    time.Duration
	Customer  *Customer
	Category  Category
	Items     []OrderItem
}

// SampleOrder returns a fully populated order.
func SampleOrder() Order {
	return Order{
		ID:        1001,
		Status:    StatusShipped,
		Total:     decimal.RequireFromString("149.95"),
		Discount:  0.15,
		Currency:  "EUR",
		Grade:     'A',
		Flags:     0x5,
		OrderedAt: time.Date(2024, time.March, 9, 14, 30, 0, 123000000, time.UTC),
		Window:    90 * time.Minute,
		Customer: &Customer{
			ID:       42,
			Email:    "jane@example.com",
			FullName: "Jane Roe",
			Address: Address{
				Street:     "1 Main St",
				City:       "Springfield",
				PostalCode: "12345",
				Country:    "US",
			},
			IsActive: true,
		},
		Category: Category{Code: "books"},
	}
}
