// Package render — PDF renderer.
// Converts segmented blocks into a styled PDF using gofpdf.
// Headings use variable font sizes; paragraph and list text goes through
// gofpdf's basic HTML writer so bold and italic spans survive.
package render

import (
	"bytes"
	"strconv"

	"github.com/gaurav-prasanna/briefpipe/core"
	"github.com/gaurav-prasanna/briefpipe/core/markup"
	"github.com/jung-kurt/gofpdf"
)

// pdfInline maps spans onto the tags understood by gofpdf's HTML writer.
// Code spans have no equivalent and are written as plain text.
var pdfInline = markup.Inline{
	Strong:   func(s string) string { return "<b>" + s + "</b>" },
	Emphasis: func(s string) string { return "<i>" + s + "</i>" },
}

const (
	pdfBodySize   = 10
	pdfLineHeight = 5
	pdfListIndent = 6
)

// PDFRenderer renders blocks as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts blocks into PDF bytes.
func (r *PDFRenderer) Render(blocks []markup.Block, meta core.BriefMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title from metadata.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(pageTitle(meta)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	if meta.Source != "" {
		pdf.MultiCell(0, 5, tr("Source: "+meta.Source), "", "L", false)
	}
	if !meta.GeneratedAt.IsZero() {
		pdf.MultiCell(0, 5, tr(generatedLine(meta.GeneratedAt, renderedAt(meta))), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	writer := pdf.HTMLBasicNew()

	for _, b := range blocks {
		switch b := b.(type) {
		case markup.Heading:
			renderHeading(pdf, tr(markup.PlainInline.Render(b.Text)), b.Level)

		case markup.Rule:
			pdfRule(pdf)

		case markup.List:
			pdf.SetFont("Helvetica", "", pdfBodySize)
			left, _, _, _ := pdf.GetMargins()
			for i, item := range b.Items {
				prefix := "• "
				if b.Ordered {
					prefix = strconv.Itoa(i+1) + ". "
				}
				pdf.SetX(left + pdfListIndent)
				writer.Write(pdfLineHeight, tr(prefix+pdfInline.Render(item)))
				pdf.Ln(pdfLineHeight + 1)
			}
			pdf.Ln(2)

		case markup.Paragraph:
			pdf.SetFont("Helvetica", "", pdfBodySize)
			writer.Write(pdfLineHeight, tr(pdfInline.Render(b.Text)))
			pdf.Ln(pdfLineHeight + 2)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{2: 15, 3: 13}
	size, ok := sizes[level]
	if !ok {
		size = pdfBodySize
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// pdfRule draws a thin divider across the printable width.
func pdfRule(pdf *gofpdf.Fpdf) {
	width, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	y := pdf.GetY() + 2
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(left, y, width-right, y)
	pdf.SetDrawColor(0, 0, 0)
	pdf.Ln(5)
}
