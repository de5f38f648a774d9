package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Load reads design rows from path. The format follows the extension:
// .xlsx, .json, .jsonc, .yaml or .yml.
func Load(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadWorkbook(path)
	case ".json", ".jsonc":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return parseJSON(data)
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported batch file %q (use .xlsx, .json, .jsonc or .yaml)", path)
	}
}

// parseJSON accepts a JSON array of rows, with comments and trailing commas.
func parseJSON(data []byte) ([]Row, error) {
	var rows []Row
	if err := json.Unmarshal(jsonc.ToJSON(data), &rows); err != nil {
		return nil, fmt.Errorf("failed to parse designs: %w", err)
	}
	return named(rows), nil
}

func parseYAML(data []byte) ([]Row, error) {
	var rows []Row
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse designs: %w", err)
	}
	return named(rows), nil
}

// loadWorkbook reads the first sheet. The first row is a header naming the
// height, width and depth columns, plus an optional name column.
func loadWorkbook(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return parseTable(cells)
}

func parseTable(cells [][]string) ([]Row, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	cols := map[string]int{}
	for i, h := range cells[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"height", "width", "depth"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(row []string, line int, col string) (float64, error) {
		v, err := strconv.ParseFloat(cell(row, col), 64)
		if err != nil {
			return 0, fmt.Errorf("row %d: invalid %s %q", line, col, cell(row, col))
		}
		return v, nil
	}

	var rows []Row
	for i, raw := range cells[1:] {
		line := i + 2
		if strings.Join(raw, "") == "" {
			continue
		}
		var r Row
		var err error
		r.Name = cell(raw, "name")
		if r.Height, err = number(raw, line, "height"); err != nil {
			return nil, err
		}
		if r.Width, err = number(raw, line, "width"); err != nil {
			return nil, err
		}
		if r.Depth, err = number(raw, line, "depth"); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return named(rows), nil
}

// named fills in a default name for unnamed rows.
func named(rows []Row) []Row {
	for i := range rows {
		if rows[i].Name == "" {
			rows[i].Name = fmt.Sprintf("wall-%d", i+1)
		}
	}
	return rows
}
