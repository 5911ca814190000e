// Package report renders the tasting summary as the printable PDF that
// is handed out at the end of the evening.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/tvdberg/wijnproef/internal/models"
)

// Filename is the download name offered for the generated report.
const Filename = "wijn_bestelling.pdf"

// Render produces the PDF bytes for a summary: a centered title, one
// line per person, then the group total and the earned free bottles.
// Rows render in the summary's own order.
func Render(s models.Summary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so the euro sign and accented
	// names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, tr("Besteloverzicht Wijnproeverij"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(10)

	for _, p := range s.PerPerson {
		line := fmt.Sprintf("%s: %d flessen - Totaal: €%s", p.Name, p.Bottles, p.Amount.StringFixed(2))
		pdf.CellFormat(190, 10, tr(line), "", 1, "", false, 0, "")
	}

	pdf.Ln(10)
	pdf.CellFormat(190, 10, tr(fmt.Sprintf("Totaal Groep: %d flessen", s.TotalBottles)), "", 1, "", false, 0, "")
	pdf.CellFormat(190, 10, tr(fmt.Sprintf("Gratis flessen verdiend door groep: %d", s.FreeBottles)), "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}
