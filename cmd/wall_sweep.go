package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowall/internal/diagram"
	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/wall"
)

var (
	sweepHeight float64
	sweepWidth  float64
	sweepFrom   float64
	sweepTo     float64
	sweepStep   float64
)

var wallSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Safe climber weight across a range of wall angles",
	Long: `For a fixed height and width, derive the depth needed for each
wall angle in the range and rate the resulting design. Angles that fail
validation or the capacity check are marked.

Examples:
  # Default 15° to 70° in 5° steps
  gowall wall sweep -H 2.4 -w 2.4

  # Finer steps over the steep range
  gowall wall sweep -H 3.0 -w 3.0 --from 40 --to 60 --step 2.5`,
	RunE: runWallSweep,
}

func init() {
	wallCmd.AddCommand(wallSweepCmd)

	wallSweepCmd.Flags().Float64VarP(&sweepHeight, "height", "H", 0, "Wall height (m)")
	wallSweepCmd.Flags().Float64VarP(&sweepWidth, "width", "w", 0, "Wall width (m)")
	wallSweepCmd.Flags().Float64Var(&sweepFrom, "from", rating.MinAngle, "First angle (degrees)")
	wallSweepCmd.Flags().Float64Var(&sweepTo, "to", rating.MaxAngle, "Last angle (degrees)")
	wallSweepCmd.Flags().Float64Var(&sweepStep, "step", 5, "Angle step (degrees)")
}

func runWallSweep(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	h, w, _ := dimensions(cmd, sweepHeight, sweepWidth, 0)

	if sweepStep <= 0 {
		return fmt.Errorf("step must be positive, got %g", sweepStep)
	}
	if sweepTo < sweepFrom {
		return fmt.Errorf("--to (%g) is below --from (%g)", sweepTo, sweepFrom)
	}

	printTitle(out, "CLIMBING WALL ANGLE SWEEP")

	var points []diagram.SweepPoint
	tw := printSection(out, fmt.Sprintf("HEIGHT %.2f m, WIDTH %.2f m", h, w))
	fmt.Fprintf(tw, "  Angle\tDepth\tSheets\tSafe weight\tStatus\n")
	fmt.Fprintf(tw, "  ─────\t─────\t──────\t───────────\t──────\n")
	// Half a step past the end so the last angle is included.
	for angle := range diagram.Steps(sweepFrom, sweepTo+sweepStep/2, sweepStep) {
		depth := rating.RoundTo(h*math.Tan(angle*math.Pi/180), 3)
		p := diagram.SweepPoint{Angle: angle}

		s, err := wall.New(h, w, depth)
		var ml *wall.MaterialList
		if err == nil {
			ml, err = wall.Calculate(s)
		}
		if err != nil {
			p.Err = err
			fmt.Fprintf(tw, "  %.1f°\t%.2f m\t-\t-\t%s\n", angle, depth, wall.KindName(err))
		} else {
			p.Weight = ml.SafeClimberWeightKg
			fmt.Fprintf(tw, "  %.1f°\t%.2f m\t%d\t%.1f kg\tOK\n", angle, depth, ml.PlywoodSheets, ml.SafeClimberWeightKg)
		}
		points = append(points, p)
	}
	tw.Flush()
	fmt.Fprintln(out)

	if chart := diagram.DrawSweep(points); chart != "" {
		fmt.Fprintln(out, chart)
		fmt.Fprintln(out)
	}
	return nil
}
