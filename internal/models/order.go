package models

import "github.com/shopspring/decimal"

// OrderLine represents one person's order for one wine.
// Lines are append-only: they are never edited individually, only
// bulk-cleared when the tasting is reset.
type OrderLine struct {
	// Person is the name of the person who ordered.
	Person string `json:"person"`

	// Wine is the catalog name of the wine at the time of ordering.
	// It is not re-checked against the catalog afterwards.
	Wine string `json:"wine"`

	// Quantity is the number of bottles, always >= 1.
	Quantity int `json:"quantity"`

	// UnitPrice is the bottle price snapshotted from the catalog when
	// the order was entered. Later catalog price changes do not affect
	// existing lines.
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LineTotal returns Quantity * UnitPrice.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
