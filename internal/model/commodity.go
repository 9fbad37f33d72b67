package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyNamespace is the commodity namespace reserved for currencies.
const CurrencyNamespace = "CURRENCY"

// Commodity is a currency or tradeable instrument. Identity is
// (namespace, mnemonic); Scale is the smallest-unit fraction
// (100 = cents).
type Commodity struct {
	Namespace string
	Mnemonic  string
	Fullname  string
	Scale     int
}

// Key returns the canonical "NAMESPACE:MNEMONIC" identity string.
func (c Commodity) Key() string {
	return c.Namespace + ":" + c.Mnemonic
}

// IsCurrency reports whether the commodity is a currency.
func (c Commodity) IsCurrency() bool {
	return c.Namespace == CurrencyNamespace
}

// Price is one recorded quotation for a commodity: Value units of
// Currency per unit of the commodity, effective on Date.
type Price struct {
	Commodity string // commodity key
	Date      time.Time
	Value     decimal.Decimal
	Currency  string // currency mnemonic
}
