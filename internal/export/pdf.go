package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"wedding-site/internal/models"
)

// DocumentInfo carries the fixed text repeated on every generated page.
type DocumentInfo struct {
	// Footer is printed centered at the bottom of each page,
	// e.g. "Piers & Rakel Wedding - April 17-18, 2026".
	Footer string
}

// EventSection is the printable description of one sub-event.
type EventSection struct {
	Title       string
	Date        string
	Venue       string
	Description string
}

// EventCatalog holds the three sub-event descriptions in canonical
// order: ceremony, reception, celebration.
type EventCatalog struct {
	Ceremony    EventSection
	Reception   EventSection
	Celebration EventSection
}

const (
	pageMargin   = 50
	contentWidth = 495 // A4 width in points minus both margins
	rowLineH     = 14
	// Rows stop here so they never collide with the footer.
	contentBottom = 740
)

// WriteDietaryPDF renders the dietary requirements report: one row per
// guest with non-empty dietary text, in store iteration order. With no
// submissions it produces a single page saying so rather than failing.
func WriteDietaryPDF(w io.Writer, guests []models.Guest, info DocumentInfo) error {
	var withDietary []models.Guest
	for _, g := range guests {
		if strings.TrimSpace(g.DietaryRequirements) != "" {
			withDietary = append(withDietary, g)
		}
	}

	pdf := newDocument(info)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(90, 115, 96)
	pdf.CellFormat(0, 24, "Wedding Dietary Requirements", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 16, "Generated: "+time.Now().Format("2 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(24)

	if len(withDietary) == 0 {
		pdf.SetFont("Helvetica", "", 14)
		pdf.SetTextColor(51, 51, 51)
		pdf.CellFormat(0, 18, "No dietary requirements have been submitted yet.", "", 1, "C", false, 0, "")
		return output(pdf, w)
	}

	writeDietaryHeader(pdf)
	for i, g := range withDietary {
		writeDietaryRow(pdf, g, i%2 == 0)
	}
	return output(pdf, w)
}

func writeDietaryHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(90, 115, 96)
	y := pdf.GetY()
	pdf.Text(pageMargin, y+12, "Guest Name")
	pdf.Text(270, y+12, "Dietary Requirements")

	pdf.SetDrawColor(90, 115, 96)
	pdf.SetLineWidth(1)
	pdf.Line(pageMargin, y+20, pageMargin+contentWidth, y+20)
	pdf.SetY(y + 28)
}

func writeDietaryRow(pdf *fpdf.Fpdf, g models.Guest, shaded bool) {
	pdf.SetFont("Helvetica", "", 11)

	nameLines := pdf.SplitText(g.DisplayName, 200)
	dietLines := pdf.SplitText(g.DietaryRequirements, 265)
	lines := len(nameLines)
	if len(dietLines) > lines {
		lines = len(dietLines)
	}
	rowH := float64(lines)*rowLineH + 8

	if pdf.GetY()+rowH > contentBottom {
		pdf.AddPage()
		writeDietaryHeader(pdf)
		pdf.SetFont("Helvetica", "", 11)
	}

	y := pdf.GetY()
	if shaded {
		pdf.SetFillColor(249, 249, 249)
		pdf.Rect(pageMargin, y, contentWidth, rowH, "F")
	}

	pdf.SetTextColor(51, 51, 51)
	pdf.SetXY(pageMargin, y+4)
	pdf.MultiCell(200, rowLineH, g.DisplayName, "", "L", false)
	pdf.SetXY(270, y+4)
	pdf.MultiCell(265, rowLineH, g.DietaryRequirements, "", "L", false)
	pdf.SetY(y + rowH)
}

// WriteEventDetailsPDF renders the personalized event-details document
// for one guest: a section per invited event in canonical order, or a
// placeholder when the guest has no invitations at all.
func WriteEventDetailsPDF(w io.Writer, guest models.Guest, catalog EventCatalog, info DocumentInfo) error {
	var sections []EventSection
	if guest.Events.Ceremony {
		sections = append(sections, catalog.Ceremony)
	}
	if guest.Events.Reception {
		sections = append(sections, catalog.Reception)
	}
	if guest.Events.Celebration {
		sections = append(sections, catalog.Celebration)
	}

	pdf := newDocument(info)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(90, 115, 96)
	pdf.CellFormat(0, 24, "Your Event Details", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 16, "Prepared for "+guest.DisplayName, "", 1, "C", false, 0, "")
	pdf.Ln(24)

	if len(sections) == 0 {
		pdf.SetFont("Helvetica", "", 14)
		pdf.SetTextColor(51, 51, 51)
		pdf.CellFormat(0, 18, "No events found for this guest.", "", 1, "C", false, 0, "")
		return output(pdf, w)
	}

	for _, section := range sections {
		writeEventSection(pdf, section)
	}
	return output(pdf, w)
}

func writeEventSection(pdf *fpdf.Fpdf, section EventSection) {
	descLines := pdf.SplitText(section.Description, contentWidth)
	sectionH := 22 + 2*16 + float64(len(descLines))*rowLineH + 20
	if pdf.GetY()+sectionH > contentBottom {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(90, 115, 96)
	pdf.CellFormat(0, 22, section.Title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 16, "Date: "+section.Date, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 16, "Venue: "+section.Venue, "", 1, "L", false, 0, "")
	pdf.MultiCell(contentWidth, rowLineH, section.Description, "", "L", false)
	pdf.Ln(20)
}

func newDocument(info DocumentInfo) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-40)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(153, 153, 153)
		pdf.CellFormat(0, 12, info.Footer, "", 0, "C", false, 0, "")
	})
	return pdf
}

func output(pdf *fpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
