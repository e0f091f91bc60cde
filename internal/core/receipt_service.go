package core

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"citizen-portal-backend/internal/models"
)

// receiptService implements the ReceiptService interface using gofpdf.
type receiptService struct {
	municipality string
}

// NewReceiptService creates a new ReceiptService instance. municipality
// is printed in the receipt header.
func NewReceiptService(municipality string) ReceiptService {
	return &receiptService{municipality: municipality}
}

// BuildReceipt renders the filing receipt for one submission: protocol,
// filer snapshot, form fields and filing timestamp.
func (s *receiptService) BuildReceipt(sub *models.Submission) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, s.municipality, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, "Consumer Protection Filing Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Protocol: "+sub.Protocol, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Filed at: "+sub.CreatedAt.Format("2006-01-02 15:04:05 MST"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Status: "+sub.Status, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if sub.Profile != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Filer", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, "Name: "+sub.Profile.Name, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, "Document: "+sub.Profile.DocumentNumber, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, "Email: "+sub.Profile.Email, "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, "Phone: "+sub.Profile.Phone, "", 1, "L", false, 0, "")
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Complaint", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)

	// Stable field order for reproducible documents.
	keys := make([]string, 0, len(sub.Fields))
	for k := range sub.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		pdf.MultiCell(0, 7, fmt.Sprintf("%s: %s", k, sub.Fields[k]), "", "L", false)
	}

	if len(sub.Attachments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Attachments (%d)", len(sub.Attachments)), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		for _, att := range sub.Attachments {
			pdf.CellFormat(0, 7, fmt.Sprintf("- %s (%s)", att.Name, att.ContentType), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt for protocol %s: %w", sub.Protocol, err)
	}
	return buf.Bytes(), nil
}
