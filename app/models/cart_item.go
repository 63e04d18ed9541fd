package models

import (
	"github.com/shopspring/decimal"
)

// CartItem lives only on the client until checkout turns it into an
// OrderLineItem.
type CartItem struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
}

func (c CartItem) LineItem() OrderLineItem {
	return OrderLineItem{
		ID:       c.ID,
		Name:     c.Name,
		Price:    c.Price,
		Image:    c.Image,
		Quantity: c.Quantity,
		Category: c.Category,
	}
}
