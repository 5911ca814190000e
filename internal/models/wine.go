package models

import "github.com/shopspring/decimal"

// WineEntry represents one wine in the catalog.
type WineEntry struct {
	// Name is the wine's display name and acts as its key when orders
	// are entered. Uniqueness is not enforced; when duplicates exist the
	// first matching row wins at order entry.
	Name string `json:"name"`

	// Price is the current bottle price in euro.
	Price decimal.Decimal `json:"price"`
}
