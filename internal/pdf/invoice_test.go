package pdf

import (
	"bytes"
	"testing"

	"github.com/salesdesk/salesdesk/internal/models"
)

func TestWriteInvoiceProducesPDF(t *testing.T) {
	inv := models.Invoice{
		ID:              7,
		InvoiceNumber:   "INV-2024-001",
		CustomerDetails: &models.CustomerRef{CompanyName: "Acme Corp"},
		TotalAmount:     1250.50,
		Status:          models.InvoiceStatusSent,
		DueDate:         "2024-07-01",
	}

	var buf bytes.Buffer
	if err := WriteInvoice(&buf, inv); err != nil {
		t.Fatalf("WriteInvoice: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output does not start with a PDF header: %q", buf.Bytes()[:8])
	}
}

func TestInvoiceFilename(t *testing.T) {
	cases := []struct {
		inv  models.Invoice
		want string
	}{
		{models.Invoice{InvoiceNumber: "INV-2024-001"}, "INV-2024-001.pdf"},
		{models.Invoice{InvoiceNumber: "weird/../name"}, "weird----name.pdf"},
		{models.Invoice{ID: 9}, "invoice-9.pdf"},
	}
	for _, tc := range cases {
		if got := InvoiceFilename(tc.inv); got != tc.want {
			t.Errorf("InvoiceFilename(%q) = %q, want %q", tc.inv.InvoiceNumber, got, tc.want)
		}
	}
}
