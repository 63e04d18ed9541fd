package calc

import "github.com/shopspring/decimal"

func CalculateDiscount(baseTotal decimal.Decimal, discountPercent int) decimal.Decimal {
	return baseTotal.Mul(decimal.NewFromInt(int64(discountPercent))).Div(decimal.NewFromInt(100))
}

// DiscountedPrice rounds to whole shillings, the smallest unit shown in the
// storefront.
func DiscountedPrice(price decimal.Decimal, discountPercent int) decimal.Decimal {
	return price.Sub(CalculateDiscount(price, discountPercent)).Round(0)
}
