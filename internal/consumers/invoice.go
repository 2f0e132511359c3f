package consumers

import (
	"fmt"
	"os"
	"path/filepath"

	"carebook/internal/models"

	"github.com/phpdave11/gofpdf"
)

// InvoiceGenerator renders a one-page PDF invoice for a paid booking.
type InvoiceGenerator struct {
	outputDir string
}

func NewInvoiceGenerator(outputDir string) *InvoiceGenerator {
	return &InvoiceGenerator{outputDir: outputDir}
}

func (g *InvoiceGenerator) Generate(booking *models.Booking, svc *models.Service, transactionID string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create invoice directory: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "carebook - Payment Invoice")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Booking ID", booking.ID},
		{"Service", svc.Title},
		{"Category", svc.Category},
		{"Start", booking.StartTime.Format("2006-01-02 15:04")},
		{"Duration", fmt.Sprintf("%g hours", booking.DurationHours)},
		{"Rate", fmt.Sprintf("$%.2f / hour", svc.PricePerHour)},
		{"Total", fmt.Sprintf("$%.2f", booking.TotalCost)},
		{"Transaction", transactionID},
		{"Address", booking.Location.Address},
	}

	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(40, 8, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	path := filepath.Join(g.outputDir, fmt.Sprintf("invoice-%s.pdf", booking.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write invoice: %w", err)
	}

	return path, nil
}
