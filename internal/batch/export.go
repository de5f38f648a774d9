package batch

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/wall"
)

// SheetResults is the sheet written by WriteResults.
const SheetResults = "Results"

var resultHeader = []any{
	"Name", "Height (m)", "Width (m)", "Depth (m)", "Angle (°)",
	"Status", "Sheets", "Safe weight (kg)", "Governs", "Error kind", "Message",
}

// WriteResults writes one row per result as an XLSX workbook.
func WriteResults(w io.Writer, results []Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetResults); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(SheetResults, "A1", &resultHeader); err != nil {
		return err
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := resultRow(r)
		if err := f.SetSheetRow(SheetResults, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(SheetResults, "A1", "K1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetResults, "K", "K", 60); err != nil {
		return err
	}
	return f.Write(w)
}

func resultRow(r Result) []any {
	row := []any{r.Row.Name, r.Row.Height, r.Row.Width, r.Row.Depth}
	if r.Row.Height > 0 && r.Row.Depth > 0 {
		row = append(row, wall.Angle(r.Row.Height, r.Row.Depth))
	} else {
		row = append(row, "")
	}
	if !r.OK() {
		return append(row, "FAIL", "", "", "", wall.KindName(r.Err), r.Err.Error())
	}
	ml := r.Materials
	return append(row, "OK",
		ml.PlywoodSheets,
		rating.RoundTo(ml.SafeClimberWeightKg, 1),
		ml.Capacity.Governs,
		"", "")
}
