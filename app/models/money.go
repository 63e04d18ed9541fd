package models

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, matching what browser clients send.
	decimal.MarshalJSONWithoutQuotes = true
}
