// Package aggregate turns the flat order log into per-person and group
// totals for the overview screen and the PDF report.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/tvdberg/wijnproef/internal/discount"
	"github.com/tvdberg/wijnproef/internal/models"
)

// Summarize groups order lines by person name (exact string match) and
// sums bottles and amounts per person and for the group as a whole. The
// group bottle count is fed through the discount table to resolve the
// free-bottle reward.
//
// Per-person rows come out in order of first appearance in the log, so
// the result is deterministic for a fixed input. An empty log yields an
// empty summary with zero totals and zero free bottles.
func Summarize(orders []models.OrderLine) models.Summary {
	summary := models.Summary{
		TotalAmount: decimal.Zero,
	}

	index := make(map[string]int) // person name -> position in PerPerson
	for _, line := range orders {
		i, seen := index[line.Person]
		if !seen {
			i = len(summary.PerPerson)
			index[line.Person] = i
			summary.PerPerson = append(summary.PerPerson, models.PersonTotal{
				Name:   line.Person,
				Amount: decimal.Zero,
			})
		}

		total := line.LineTotal()
		summary.PerPerson[i].Bottles += line.Quantity
		summary.PerPerson[i].Amount = summary.PerPerson[i].Amount.Add(total)

		summary.TotalBottles += line.Quantity
		summary.TotalAmount = summary.TotalAmount.Add(total)
	}

	summary.FreeBottles = discount.FreeBottles(summary.TotalBottles)
	return summary
}
