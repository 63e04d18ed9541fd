package calc

import (
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/shopspring/decimal"
)

// ShippingCost is the flat delivery fee in KSh added to every order.
var ShippingCost = decimal.NewFromInt(150)

func Subtotal(items []models.OrderLineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

func OrderTotal(items []models.OrderLineItem) decimal.Decimal {
	return Subtotal(items).Add(ShippingCost)
}
