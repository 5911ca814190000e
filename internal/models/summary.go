package models

import "github.com/shopspring/decimal"

// PersonTotal is one person's aggregated share of the order log.
type PersonTotal struct {
	// Name is the person's name as it appears on their order lines.
	Name string `json:"name"`

	// Bottles is the total number of bottles this person ordered.
	Bottles int `json:"bottles"`

	// Amount is the sum of this person's line totals.
	Amount decimal.Decimal `json:"amount"`
}

// Summary is the aggregated view of the whole order log.
// This is the output of the aggregation step and the input to both the
// overview screen and the PDF report.
type Summary struct {
	// PerPerson holds one row per distinct person, in order of first
	// appearance in the log.
	PerPerson []PersonTotal `json:"per_person"`

	// TotalBottles is the bottle count across all orders.
	TotalBottles int `json:"total_bottles"`

	// TotalAmount is the amount across all orders.
	TotalAmount decimal.Decimal `json:"total_amount"`

	// FreeBottles is the group's reward from the discount tier table,
	// resolved from TotalBottles.
	FreeBottles int `json:"free_bottles"`
}
