package server

import (
	"bufio"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"newsbrief/internal/store"
)

// writeSummaryPDF renders a stored summary as a minimal PDF. Summaries
// use bolded Markdown-style headings (**Introduction** and friends) and
// bullet lists; this keeps the layout simple rather than attempting full
// Markdown rendering.
func writeSummaryPDF(rec store.Record, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(rec.Link, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, rec.Link, "", "L", false)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)

	scanner := bufio.NewScanner(strings.NewReader(rec.Summary))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(5)
			continue
		}
		if heading, ok := headingText(s); ok {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, heading, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		pdf.MultiCell(0, 5, s, "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return pdf.Output(w)
}

// headingText recognizes **Bold** and #-style heading lines.
func headingText(s string) (string, bool) {
	if strings.HasPrefix(s, "#") {
		return strings.TrimSpace(strings.TrimLeft(s, "#")), true
	}
	if strings.HasPrefix(s, "**") {
		trimmed := strings.TrimSuffix(strings.TrimPrefix(s, "**"), "**")
		// Only treat short bold-wrapped lines as headings; bold text inside
		// a paragraph stays inline.
		if !strings.Contains(trimmed, "**") && len(strings.Fields(trimmed)) <= 8 {
			return strings.TrimSuffix(trimmed, ":"), true
		}
	}
	return "", false
}
