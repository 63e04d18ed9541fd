package calc

import (
	"testing"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTotalAddsShipping(t *testing.T) {
	items := []models.OrderLineItem{
		{ID: 1, Name: "Bowl", Price: decimal.NewFromInt(1000), Quantity: 2},
		{ID: 2, Name: "Basket", Price: decimal.RequireFromString("99.50"), Quantity: 1},
	}

	assert.True(t, Subtotal(items).Equal(decimal.RequireFromString("2099.50")))
	assert.True(t, OrderTotal(items).Equal(decimal.RequireFromString("2249.50")))
}

func TestOrderTotalOfNothingIsShipping(t *testing.T) {
	assert.True(t, OrderTotal(nil).Equal(ShippingCost))
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   decimal.Decimal
		percent int
		want    string
	}{
		{name: "twenty percent", price: decimal.NewFromInt(1950), percent: 20, want: "1560"},
		{name: "rounds to shilling", price: decimal.NewFromInt(890), percent: 20, want: "712"},
		{name: "zero percent", price: decimal.NewFromInt(1200), percent: 0, want: "1200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountedPrice(tt.price, tt.percent).String())
		})
	}
}
