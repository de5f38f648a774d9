package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gowall/internal/diagram"
	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/report"
	"github.com/alexiusacademia/gowall/internal/wall"
)

var (
	// Wall inputs (m)
	designHeight float64
	designWidth  float64
	designDepth  float64

	// Output options
	designShowDiagram bool
	designExportFile  string
	designReportFile  string
)

var wallDesignCmd = &cobra.Command{
	Use:   "design",
	Short: "Calculate materials and safety rating for a wall",
	Long: `Validate a wall, then compute its timber cut list, joint angles,
plywood sheet count and safe maximum climber weight.

Flags left unset fall back to the configured default wall
(2.4 m x 2.4 m x 2.0 m unless overridden in the config file).
File names given to --output and --report without an extension get
output.image_format and output.report_format from the config.

Examples:
  # The default 2.4 x 2.4 m wall with 2.0 m of depth
  gowall wall design

  # A 3 m wall with ASCII diagrams and an image export
  gowall wall design -H 3.0 -w 3.0 -d 2.5 --diagram -o wall.png

  # Write the materials list as PDF
  gowall wall design -H 2.4 -w 2.4 -d 2.0 -r materials.pdf`,
	RunE: runWallDesign,
}

func init() {
	wallCmd.AddCommand(wallDesignCmd)

	wallDesignCmd.Flags().Float64VarP(&designHeight, "height", "H", 0, "Wall height (m)")
	wallDesignCmd.Flags().Float64VarP(&designWidth, "width", "w", 0, "Wall width (m)")
	wallDesignCmd.Flags().Float64VarP(&designDepth, "depth", "d", 0, "Available depth for the overhang (m)")

	wallDesignCmd.Flags().BoolVar(&designShowDiagram, "diagram", false, "Show ASCII side profile and summary")
	wallDesignCmd.Flags().StringVarP(&designExportFile, "output", "o", "", "Export diagram to file (png, svg, pdf; default extension from config)")
	wallDesignCmd.Flags().StringVarP(&designReportFile, "report", "r", "", "Write materials list to file (txt, pdf, xlsx, yaml, json; default extension from config)")
}

func runWallDesign(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	h, w, d := dimensions(cmd, designHeight, designWidth, designDepth)

	s, err := wall.New(h, w, d)
	if err != nil {
		logger.Info("design rejected", zap.String("kind", wall.KindName(err)))
		return err
	}
	ml, err := wall.Calculate(s)
	if err != nil {
		logger.Info("design rejected", zap.String("kind", wall.KindName(err)))
		return err
	}
	logger.Debug("design calculated",
		zap.Float64("angle", s.AngleDegrees()),
		zap.Int("sheets", ml.PlywoodSheets),
		zap.String("governs", ml.Capacity.Governs))

	printTitle(out, "CLIMBING WALL DESIGN")

	tw := printSection(out, "INPUT DATA")
	fmt.Fprintf(tw, "  Height:\t%.2f m\n", s.Height())
	fmt.Fprintf(tw, "  Width:\t%.2f m\n", s.Width())
	fmt.Fprintf(tw, "  Available depth:\t%.2f m\n", s.Depth())
	tw.Flush()
	fmt.Fprintln(out)

	tw = printSection(out, "GEOMETRY")
	fmt.Fprintf(tw, "  Wall angle:\t%.1f°\n", s.AngleDegrees())
	fmt.Fprintf(tw, "  Panel length (sloped):\t%.2f m\n", s.PanelHeight())
	fmt.Fprintf(tw, "  Panel depth (horizontal):\t%.2f m\n", s.PanelDepth())
	tw.Flush()
	fmt.Fprintln(out)

	tw = printSection(out, "TIMBER CUT LIST")
	for _, t := range ml.TimberLengths {
		fmt.Fprintf(tw, "  %s:\t%.2f m\n", t.Label, t.Length)
	}
	tw.Flush()
	fmt.Fprintln(out)

	tw = printSection(out, "CUT ANGLES")
	for _, c := range ml.CutAngles {
		fmt.Fprintf(tw, "  %s:\t%.1f°\n", c.Joint, c.Degrees)
	}
	tw.Flush()
	fmt.Fprintln(out)

	tw = printSection(out, "CAPACITY")
	fmt.Fprintf(tw, "  Panel:\t%.0f kg\n", ml.Capacity.Panel)
	fmt.Fprintf(tw, "  Timber frame:\t%.0f kg\n", ml.Capacity.Timber)
	fmt.Fprintf(tw, "  Bolts:\t%.0f kg\n", ml.Capacity.Bolt)
	if ml.Capacity.Derating < 1 {
		fmt.Fprintf(tw, "  Steep-angle derating:\t%.2f\n", ml.Capacity.Derating)
	}
	fmt.Fprintf(tw, "  Governing element:\t%s\n", ml.Capacity.Governs)
	fmt.Fprintf(tw, "  Combined safety factor:\t%.1f\n", rating.CombinedFactor)
	tw.Flush()
	fmt.Fprintln(out)

	fmt.Fprintln(out, "DESIGN RESULT:")
	fmt.Fprintln(out, singleRule)
	fmt.Fprintf(out, "  ╔═════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  PLYWOOD SHEETS = %-22d║\n", ml.PlywoodSheets)
	fmt.Fprintf(out, "  ║  SAFE CLIMBER WEIGHT = %-17s║\n", fmt.Sprintf("%.1f kg", ml.SafeClimberWeightKg))
	fmt.Fprintf(out, "  ╚═════════════════════════════════════════╝\n")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %.1f kg ≥ %.0f kg minimum ✓\n", ml.SafeClimberWeightKg, rating.MinClimberWeight)
	fmt.Fprintln(out)

	data := diagram.NewWallDiagramData(s, ml)

	if designShowDiagram {
		fmt.Fprintln(out, diagram.DrawASCIIProfile(data))
		fmt.Fprintln(out, diagram.DrawSummaryBox("WALL SUMMARY", []string{
			fmt.Sprintf("Angle:          %.1f°", s.AngleDegrees()),
			fmt.Sprintf("Panel length:   %.2f m", s.PanelHeight()),
			fmt.Sprintf("Plywood sheets: %d", ml.PlywoodSheets),
			fmt.Sprintf("Safe weight:    %.1f kg", ml.SafeClimberWeightKg),
		}))
	}

	if designExportFile != "" {
		path, err := diagram.ExportWallDiagram(data, outputPath(withFormat(designExportFile, cfg.Output.ImageFormat)))
		if err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		logger.Debug("diagram exported", zap.String("path", path))
		fmt.Fprintf(out, "Diagram exported to: %s\n", path)
	}

	if designReportFile != "" {
		path := outputPath(withFormat(designReportFile, cfg.Output.ReportFormat))
		if err := report.Write(path, s, ml); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Debug("report written", zap.String("path", path))
		fmt.Fprintf(out, "Materials list written to: %s\n", path)
	}

	return nil
}

// withFormat appends the configured format to a file name given without
// an extension.
func withFormat(name, format string) string {
	if filepath.Ext(name) != "" || format == "" {
		return name
	}
	return name + "." + strings.TrimPrefix(format, ".")
}

// outputPath places relative file names under the configured output directory.
func outputPath(name string) string {
	if filepath.IsAbs(name) || cfg.Output.Dir == "" {
		return name
	}
	return filepath.Join(cfg.Output.Dir, name)
}
