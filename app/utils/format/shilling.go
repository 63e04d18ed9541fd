package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var shilling = accounting.Accounting{Symbol: "KSh ", Precision: 0, Thousand: ",", Decimal: "."}

// Shilling formats an amount the way the storefront prints prices,
// e.g. "KSh 12,500".
func Shilling(amount decimal.Decimal) string {
	return shilling.FormatMoneyDecimal(amount)
}
