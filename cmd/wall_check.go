package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/wall"
)

var (
	checkHeight float64
	checkWidth  float64
	checkDepth  float64
)

var wallCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate wall dimensions without computing materials",
	Long: `Check a wall against the safety limits and show the derived
angle and panel geometry.

Limits:
  - Wall angle between 15° and 70°
  - Height at most 4.0 m
  - Width at least 1.2 m
  - Height-to-width ratio at most 2:1
  - Depth must fit the sloped panel

Examples:
  gowall wall check -H 3.0 -w 2.4 -d 1.0`,
	RunE: runWallCheck,
}

func init() {
	wallCmd.AddCommand(wallCheckCmd)

	wallCheckCmd.Flags().Float64VarP(&checkHeight, "height", "H", 0, "Wall height (m)")
	wallCheckCmd.Flags().Float64VarP(&checkWidth, "width", "w", 0, "Wall width (m)")
	wallCheckCmd.Flags().Float64VarP(&checkDepth, "depth", "d", 0, "Available depth for the overhang (m)")
}

func runWallCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	h, w, d := dimensions(cmd, checkHeight, checkWidth, checkDepth)

	printTitle(out, "CLIMBING WALL CHECK")

	tw := printSection(out, "GEOMETRY")
	fmt.Fprintf(tw, "  Height:\t%.2f m\n", h)
	fmt.Fprintf(tw, "  Width:\t%.2f m\n", w)
	fmt.Fprintf(tw, "  Available depth:\t%.2f m\n", d)
	if h > 0 && d > 0 {
		fmt.Fprintf(tw, "  Wall angle:\t%.1f°\n", wall.Angle(h, d))
	}
	if h > 0 && w > 0 {
		fmt.Fprintf(tw, "  Height-to-width ratio:\t%.2f:1 (max %.1f:1)\n", h/w, rating.MaxAspectRatio)
	}
	tw.Flush()
	fmt.Fprintln(out)

	s, err := wall.New(h, w, d)
	if err != nil {
		fmt.Fprintln(out, "  ╔═════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║  WALL NOT VALID                         ║")
		fmt.Fprintln(out, "  ╚═════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %s\n\n", err)
		return err
	}

	tw = printSection(out, "PANEL")
	fmt.Fprintf(tw, "  Panel length (sloped):\t%.2f m\n", s.PanelHeight())
	fmt.Fprintf(tw, "  Panel depth (horizontal):\t%.2f m\n", s.PanelDepth())
	fmt.Fprintf(tw, "  Maximum angle for this depth:\t%.1f°\n", wall.MaxAchievableAngle(h, d))
	tw.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Wall dimensions are within safety limits ✓")
	fmt.Fprintln(out)
	return nil
}
