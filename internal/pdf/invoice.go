// Package pdf renders invoice documents for download.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/salesdesk/salesdesk/internal/models"
)

// InvoiceFilename derives the download name from the invoice number.
func InvoiceFilename(inv models.Invoice) string {
	number := strings.TrimSpace(inv.InvoiceNumber)
	if number == "" {
		number = fmt.Sprintf("invoice-%d", inv.ID)
	}
	number = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, number)
	return number + ".pdf"
}

// WriteInvoice renders a single invoice as an A4 PDF.
func WriteInvoice(w io.Writer, inv models.Invoice) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 20)
	doc.Cell(0, 12, "INVOICE")
	doc.Ln(16)

	doc.SetFont("Arial", "", 11)
	row(doc, "Invoice Number", inv.InvoiceNumber)
	row(doc, "Customer", inv.CustomerName())
	row(doc, "Status", string(inv.Status))
	row(doc, "Due Date", inv.DueDate)
	doc.Ln(6)

	doc.SetFont("Arial", "B", 12)
	doc.Cell(60, 10, "Total Amount")
	doc.Cell(0, 10, fmt.Sprintf("$%.2f", inv.TotalAmount))
	doc.Ln(12)

	doc.SetFont("Arial", "I", 9)
	doc.SetTextColor(120, 120, 120)
	doc.Cell(0, 8, "Generated by SalesDesk")

	return doc.Output(w)
}

func row(doc *gofpdf.Fpdf, label, value string) {
	doc.SetFont("Arial", "B", 11)
	doc.Cell(60, 8, label)
	doc.SetFont("Arial", "", 11)
	doc.Cell(0, 8, value)
	doc.Ln(8)
}
