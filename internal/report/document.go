package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gowall/internal/wall"
)

// WallSummary is the serialisable form of a wall spec.
type WallSummary struct {
	Height      float64 `json:"height_m" yaml:"height_m"`
	Width       float64 `json:"width_m" yaml:"width_m"`
	Depth       float64 `json:"depth_m" yaml:"depth_m"`
	Angle       float64 `json:"angle_deg" yaml:"angle_deg"`
	PanelHeight float64 `json:"panel_height_m" yaml:"panel_height_m"`
	PanelDepth  float64 `json:"panel_depth_m" yaml:"panel_depth_m"`
}

// Document pairs a wall with its material list for YAML and JSON output.
type Document struct {
	Wall      WallSummary        `json:"wall" yaml:"wall"`
	Materials *wall.MaterialList `json:"materials" yaml:"materials"`
}

// NewDocument builds a Document from a calculated wall.
func NewDocument(s wall.Spec, ml *wall.MaterialList) Document {
	return Document{
		Wall:      Summarize(s),
		Materials: ml,
	}
}

// Summarize flattens a spec including its derived geometry.
func Summarize(s wall.Spec) WallSummary {
	return WallSummary{
		Height:      s.Height(),
		Width:       s.Width(),
		Depth:       s.Depth(),
		Angle:       s.AngleDegrees(),
		PanelHeight: s.PanelHeight(),
		PanelDepth:  s.PanelDepth(),
	}
}

// WriteYAML encodes the document as YAML.
func WriteYAML(w io.Writer, s wall.Spec, ml *wall.MaterialList) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s, ml)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSON encodes the document as indented JSON.
func WriteJSON(w io.Writer, s wall.Spec, ml *wall.MaterialList) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(s, ml))
}

// WriteText writes the plain-text materials list.
func WriteText(w io.Writer, s wall.Spec, ml *wall.MaterialList) error {
	_, err := io.WriteString(w, MaterialsList(s, ml))
	return err
}

// Formats maps file extensions to their writers.
var Formats = map[string]func(io.Writer, wall.Spec, *wall.MaterialList) error{
	".txt":  WriteText,
	".pdf":  WritePDF,
	".xlsx": WriteWorkbook,
	".yaml": WriteYAML,
	".yml":  WriteYAML,
	".json": WriteJSON,
}

// Write saves the report to path, picking the format from the extension.
func Write(path string, s wall.Spec, ml *wall.MaterialList) error {
	write, ok := Formats[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return fmt.Errorf("unsupported report format %q (use .txt, .pdf, .xlsx, .yaml or .json)", filepath.Ext(path))
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := write(f, s, ml); err != nil {
		f.Close()
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return f.Close()
}
