package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/wall"
)

// Workbook sheet names
const (
	SheetCutList = "Cut List"
	SheetSummary = "Summary"
)

// WriteWorkbook writes the cut list and a wall summary as an XLSX workbook.
func WriteWorkbook(w io.Writer, s wall.Spec, ml *wall.MaterialList) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCutList); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := [][]any{{"Item", "Length (m)", "Cut angle (°)"}}
	for _, t := range ml.TimberLengths {
		rows = append(rows, []any{t.Label, rating.RoundTo(t.Length, 2), ""})
	}
	for _, c := range ml.CutAngles {
		rows = append(rows, []any{c.Joint, "", c.Degrees})
	}
	if err := writeRows(f, SheetCutList, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetCutList, "A1", "C1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetCutList, "A", "A", 24); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	summary := [][]any{
		{"Property", "Value"},
		{"Height (m)", s.Height()},
		{"Width (m)", s.Width()},
		{"Depth (m)", s.Depth()},
		{"Angle (°)", s.AngleDegrees()},
		{"Plywood sheets", ml.PlywoodSheets},
		{"Safe climber weight (kg)", rating.RoundTo(ml.SafeClimberWeightKg, 2)},
		{"Governing element", ml.Capacity.Governs},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 28); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
