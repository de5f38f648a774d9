package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var wallCmd = &cobra.Command{
	Use:   "wall",
	Short: "Climbing wall design, checks and angle sweeps",
	Long: `Design and check a fixed-angle climbing wall panel from its
height, width and available depth (meters).

Subcommands:
  design   - Full cut list, sheet count and safety rating
  check    - Validate the dimensions and show the derived geometry
  sweep    - Safe climber weight across a range of wall angles

The wall angle is always derived from height and depth.`,
}

func init() {
	rootCmd.AddCommand(wallCmd)
}

const (
	doubleRule = "═══════════════════════════════════════════════════════════════"
	singleRule = "───────────────────────────────────────────────────────────────"
)

func printTitle(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, doubleRule)
	fmt.Fprintf(out, "     %s\n", title)
	fmt.Fprintln(out, doubleRule)
	fmt.Fprintln(out)
}

func printSection(out io.Writer, title string) *tabwriter.Writer {
	fmt.Fprintf(out, "%s:\n", title)
	fmt.Fprintln(out, singleRule)
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// dimensions resolves height, width and depth from flags, falling back to
// the configured default wall for any flag left unset.
func dimensions(cmd *cobra.Command, height, width, depth float64) (float64, float64, float64) {
	if !cmd.Flags().Changed("height") {
		height = cfg.Defaults.Height
	}
	if !cmd.Flags().Changed("width") {
		width = cfg.Defaults.Width
	}
	if !cmd.Flags().Changed("depth") {
		depth = cfg.Defaults.Depth
	}
	return height, width, depth
}
