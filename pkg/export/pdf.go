package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Document is a drafted guidance document ready for rendering.
type Document struct {
	Title    string
	Subtitle string
	Body     string
	Footer   string
}

// PDFRenderer turns drafted documents into printable PDFs.
type PDFRenderer struct{}

// NewPDFRenderer constructs a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render creates an A4 PDF from the document. The body is split on blank
// lines into paragraphs and wrapped with MultiCell.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	if strings.TrimSpace(doc.Body) == "" {
		return nil, fmt.Errorf("pdf requires a non-empty body")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254")

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(doc.Title)), "", 1, "C", false, 0, "")
	}
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, 8, tr(doc.Subtitle), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 11)
	for _, paragraph := range strings.Split(doc.Body, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		pdf.MultiCell(0, 6, tr(paragraph), "", "", false)
		pdf.Ln(3)
	}

	if doc.Footer != "" {
		pdf.Ln(8)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, tr(doc.Footer), "", "R", false)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
