package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether an order in status s may move to next.
// Re-applying the current status is always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCompleted || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}

type PaymentMethod string

const (
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentCOD   PaymentMethod = "cod"
)

const orderReferenceOffset = 25000

// OrderLineItem is the product snapshot copied into an order at checkout.
// Prices are never re-read from the products table.
type OrderLineItem struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
}

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Reference     string          `gorm:"-" json:"reference"`
	FullName      string          `gorm:"size:255;not null" json:"fullName"`
	Phone         string          `gorm:"size:32;not null" json:"phone"`
	Address       string          `gorm:"type:text;not null" json:"address"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	Items         []OrderLineItem `gorm:"type:text;not null;serializer:json" json:"items"`
	Total         decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"size:20;not null;index" json:"status"`
	PaymentMethod PaymentMethod   `gorm:"size:10;not null" json:"paymentMethod"`
	MpesaCode     *string         `gorm:"size:64" json:"mpesaCode"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"createdAt"`
}

// OrderReference renders the customer facing code shown on the
// confirmation page, e.g. ASL-25001.
func OrderReference(id uint) string {
	return fmt.Sprintf("ASL-%05d", id+orderReferenceOffset)
}

func (o *Order) AfterFind(tx *gorm.DB) (err error) {
	o.Reference = OrderReference(o.ID)
	return
}

func (o *Order) AfterCreate(tx *gorm.DB) (err error) {
	o.Reference = OrderReference(o.ID)
	return
}
