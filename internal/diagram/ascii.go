package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gowall/internal/wall"
)

// WallDiagramData holds the values needed to draw a wall.
type WallDiagramData struct {
	// Input dimensions (m)
	Height float64
	Width  float64
	Depth  float64

	// Derived geometry
	Angle       float64 // degrees
	PanelHeight float64 // sloped length (m)
	PanelDepth  float64 // horizontal projection (m)

	// Results
	Sheets            int
	SafeClimberWeight float64 // kg

	Frame Frame
}

// NewWallDiagramData collects drawing data from a spec and its materials.
// ml may be nil when only the geometry is needed.
func NewWallDiagramData(s wall.Spec, ml *wall.MaterialList) WallDiagramData {
	d := WallDiagramData{
		Height:      s.Height(),
		Width:       s.Width(),
		Depth:       s.Depth(),
		Angle:       s.AngleDegrees(),
		PanelHeight: s.PanelHeight(),
		PanelDepth:  s.PanelDepth(),
		Frame:       Frame3D(s),
	}
	if ml != nil {
		d.Sheets = ml.PlywoodSheets
		d.SafeClimberWeight = ml.SafeClimberWeightKg
	}
	return d
}

// DrawASCIIProfile draws the side profile of the A-frame: the plumb line
// at the base, the sloped panel and the kicker across the top.
func DrawASCIIProfile(data WallDiagramData) string {
	var sb strings.Builder

	heightChars := 16
	// Characters are roughly twice as tall as they are wide.
	scale := float64(heightChars) / data.Height
	depthChars := int(math.Round(data.Depth * scale * 2))
	panelChars := int(math.Round(data.PanelDepth * scale * 2))
	widthChars := max(depthChars, panelChars) + 2

	sb.WriteString("\n")
	sb.WriteString("  SIDE PROFILE\n")
	sb.WriteString("  ────────────\n\n")

	for i := 0; i <= heightChars; i++ {
		row := []rune(strings.Repeat(" ", widthChars+1))
		// Row 0 is the top of the wall.
		x := int(math.Round(float64(heightChars-i) / float64(heightChars) * float64(panelChars)))

		row[0] = '│'
		if i == 0 {
			for j := 1; j < x; j++ {
				row[j] = '─'
			}
		}
		if depthChars < len(row) && depthChars > x {
			row[depthChars] = '┊'
		}
		if x < len(row) {
			row[x] = '/'
		}

		sb.WriteString("  ")
		sb.WriteString(string(row))
		switch i {
		case 0:
			sb.WriteString(fmt.Sprintf("  ◄─ kicker %.2f m", data.PanelDepth))
		case heightChars / 2:
			sb.WriteString(fmt.Sprintf("  ◄─ panel %.2f m @ %.1f°", data.PanelHeight, data.Angle))
		case heightChars:
			sb.WriteString(fmt.Sprintf("  ◄─ height %.2f m", data.Height))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  " + strings.Repeat("▀", widthChars+1) + "\n")

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  /   = Climbing panel (uprights)\n")
	sb.WriteString("  │   = Plumb line at base\n")
	sb.WriteString(fmt.Sprintf("  ┊   = Available depth %.2f m\n", data.Depth))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	border := strings.Repeat("═", maxLen+4)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

// SweepPoint is the certified load at one wall angle. Weight is zero when
// the wall fails validation or the capacity check at that angle.
type SweepPoint struct {
	Angle  float64
	Weight float64 // kg
	Err    error
}

// DrawSweep charts safe climber weight against wall angle.
func DrawSweep(points []SweepPoint) string {
	if len(points) == 0 {
		return ""
	}

	series := make([]float64, len(points))
	for i, p := range points {
		series[i] = p.Weight
	}

	caption := fmt.Sprintf("safe climber weight (kg), %.0f° to %.0f°",
		points[0].Angle, points[len(points)-1].Angle)

	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}
