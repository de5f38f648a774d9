package report

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gowall/internal/wall"
)

// WritePDF renders the materials list as an A4 PDF.
func WritePDF(w io.Writer, s wall.Spec, ml *wall.MaterialList) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Climbing Wall Materials List", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Climbing Wall Materials List")
	pdf.Ln(14)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 11)
	}
	row := func(label, value string) {
		pdf.CellFormat(80, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}

	section(SectionSpecifications)
	row("Height", fmt.Sprintf("%.2f m", s.Height()))
	row("Width", fmt.Sprintf("%.2f m", s.Width()))
	row("Depth", fmt.Sprintf("%.2f m", s.Depth()))
	row("Wall angle", fmt.Sprintf("%.1f°", s.AngleDegrees()))
	row("Panel length (sloped)", fmt.Sprintf("%.2f m", s.PanelHeight()))
	pdf.Ln(4)

	section(SectionPlywood)
	row("18mm structural plywood sheets", fmt.Sprintf("%d", ml.PlywoodSheets))
	pdf.Ln(4)

	section(SectionTimber)
	for _, t := range ml.TimberLengths {
		row(t.Label, fmt.Sprintf("%.2f m", t.Length))
	}
	pdf.Ln(4)

	section(SectionAngles)
	for _, c := range ml.CutAngles {
		row(c.Joint, fmt.Sprintf("%.1f°", c.Degrees))
	}
	pdf.Ln(4)

	section(SectionSafety)
	row("Safe maximum climber weight", fmt.Sprintf("%.1f kg", ml.SafeClimberWeightKg))
	row("Governing element", ml.Capacity.Governs)
	row("Raw capacity", fmt.Sprintf("%.0f kg", ml.Capacity.Raw))

	return pdf.Output(w)
}
