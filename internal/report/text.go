// Package report renders a wall specification and its material list as a
// plain-text materials list, a PDF, an XLSX cut list or a YAML/JSON document.
package report

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/wall"
)

// Section headings, in report order.
const (
	SectionSpecifications = "WALL SPECIFICATIONS"
	SectionPlywood        = "PLYWOOD PANELS"
	SectionTimber         = "TIMBER FRAME"
	SectionHardware       = "HARDWARE RECOMMENDATIONS"
	SectionAngles         = "CRITICAL ANGLES"
	SectionSafety         = "SAFETY INFORMATION"
	SectionAdditional     = "ADDITIONAL MATERIALS"
	SectionInstallation   = "INSTALLATION NOTES"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
)

// Bolted joints on the frame: each upright meets the base beam, the top
// cross brace and the kicker.
const (
	frameJoints   = 6
	boltsPerJoint = 2
)

// MaterialsList renders the full materials list for a calculated wall.
func MaterialsList(s wall.Spec, ml *wall.MaterialList) string {
	var sb strings.Builder

	sb.WriteString(heavyRule + "\n")
	sb.WriteString("     CLIMBING WALL MATERIALS LIST\n")
	sb.WriteString(heavyRule + "\n\n")

	heading(&sb, SectionSpecifications)
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Height:\t%.2f m\n", s.Height())
	fmt.Fprintf(w, "  Width:\t%.2f m\n", s.Width())
	fmt.Fprintf(w, "  Depth:\t%.2f m\n", s.Depth())
	fmt.Fprintf(w, "  Wall angle:\t%.1f°\n", s.AngleDegrees())
	fmt.Fprintf(w, "  Panel length (sloped):\t%.2f m\n", s.PanelHeight())
	fmt.Fprintf(w, "  Panel projection:\t%.2f m\n", s.PanelDepth())
	w.Flush()
	sb.WriteString("\n")

	heading(&sb, SectionPlywood)
	fmt.Fprintf(&sb, "  18mm structural plywood, %.0f x %.0f mm: %d sheets\n",
		rating.SheetLength, rating.SheetWidth, ml.PlywoodSheets)
	fmt.Fprintf(&sb, "  Climbing surface area: %.2f m²\n", s.Width()*s.PanelHeight())
	sb.WriteString("\n")

	heading(&sb, SectionTimber)
	for _, t := range ml.TimberLengths {
		fmt.Fprintf(&sb, "  %s: %.2f m\n", t.Label, t.Length)
	}
	var total float64
	for _, t := range ml.TimberLengths {
		total += t.Length
	}
	fmt.Fprintf(&sb, "  Total timber: %.2f m\n", total)
	sb.WriteString("\n")

	heading(&sb, SectionHardware)
	fmt.Fprintf(&sb, "  M10 bolts with nuts and washers: %d (%d per frame joint)\n",
		frameJoints*boltsPerJoint, boltsPerJoint)
	sb.WriteString("  M10 T-nuts: place to suit hold layout\n")
	sb.WriteString("  Structural screws for plywood: every 300 mm along each member\n")
	sb.WriteString("\n")

	heading(&sb, SectionAngles)
	for _, c := range ml.CutAngles {
		fmt.Fprintf(&sb, "  %s: %.1f°\n", c.Joint, c.Degrees)
	}
	sb.WriteString("\n")

	heading(&sb, SectionSafety)
	w = tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Safe maximum climber weight:\t%.1f kg\n", ml.SafeClimberWeightKg)
	fmt.Fprintf(w, "  Panel capacity:\t%.0f kg\n", ml.Capacity.Panel)
	fmt.Fprintf(w, "  Timber capacity:\t%.0f kg\n", ml.Capacity.Timber)
	fmt.Fprintf(w, "  Bolt capacity:\t%.0f kg\n", ml.Capacity.Bolt)
	fmt.Fprintf(w, "  Governing element:\t%s\n", ml.Capacity.Governs)
	if ml.Capacity.Derating < 1 {
		fmt.Fprintf(w, "  Steep-angle derating:\t%.2f\n", ml.Capacity.Derating)
	}
	fmt.Fprintf(w, "  Safety factor:\t%.1f (%.1f general x %.1f dynamic)\n",
		rating.CombinedFactor, rating.GeneralFactor, rating.DynamicFactor)
	w.Flush()
	sb.WriteString("  One climber on the wall at a time.\n")
	sb.WriteString("\n")

	heading(&sb, SectionAdditional)
	sb.WriteString("  Exterior wood glue\n")
	sb.WriteString("  11 mm drill bit for T-nut holes\n")
	sb.WriteString("  Sandpaper and exterior sealant for the plywood face\n")
	sb.WriteString("  Crash mats covering the full fall zone\n")
	sb.WriteString("\n")

	heading(&sb, SectionInstallation)
	fmt.Fprintf(&sb, "  1. Cut uprights with a %.1f° mitre where they meet the base beam.\n", s.AngleDegrees())
	fmt.Fprintf(&sb, "  2. Fit the kicker/struts level at the top; the top plate join is %.1f°.\n", 90-s.AngleDegrees())
	sb.WriteString("  3. Drill and fit T-nuts before screwing the plywood to the frame.\n")
	sb.WriteString("  4. Check every bolt before first use and monthly afterwards.\n")

	return sb.String()
}

func heading(sb *strings.Builder, title string) {
	sb.WriteString(title + ":\n")
	sb.WriteString(lightRule + "\n")
}

var (
	timberLine = regexp.MustCompile(`^\s+(.+): (-?\d+\.\d{2}) m$`)
	angleLine  = regexp.MustCompile(`^\s+(.+): (-?\d+\.\d)°$`)
)

// ParseCutList reads the timber and cut-angle entries back from a rendered
// materials list. Values carry the report precision: 2 decimals for
// lengths and 1 for angles.
func ParseCutList(text string) ([]wall.TimberLength, []wall.CutAngle, error) {
	var (
		timber  []wall.TimberLength
		angles  []wall.CutAngle
		section string
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}

		switch section {
		case SectionTimber:
			m := timberLine.FindStringSubmatch(line)
			if m == nil || m[1] == "Total timber" {
				continue
			}
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("timber line %q: %w", line, err)
			}
			timber = append(timber, wall.TimberLength{Label: m[1], Length: v})
		case SectionAngles:
			m := angleLine.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("angle line %q: %w", line, err)
			}
			angles = append(angles, wall.CutAngle{Joint: m[1], Degrees: v})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if len(timber) == 0 || len(angles) == 0 {
		return nil, nil, fmt.Errorf("no cut list found: %d timber and %d angle entries", len(timber), len(angles))
	}
	return timber, angles, nil
}
