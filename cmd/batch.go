package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gowall/internal/batch"
	"github.com/alexiusacademia/gowall/internal/wall"
)

var (
	batchInput   string
	batchOutput  string
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate many wall designs from a file",
	Long: `Evaluate a list of wall designs concurrently and print one row
per design.

Input formats:
  .xlsx         - first sheet, header row with height, width, depth
                  and an optional name column
  .json, .jsonc - array of {"name", "height", "width", "depth"}
                  (comments and trailing commas allowed)
  .yaml, .yml   - list of the same fields

Examples:
  gowall batch -f walls.xlsx
  gowall batch -f walls.jsonc -o results.xlsx --workers 8`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchInput, "file", "f", "", "Designs file (xlsx, json, jsonc, yaml) [required]")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write results workbook (xlsx)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent evaluations (default from config)")

	batchCmd.MarkFlagRequired("file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	rows, err := batch.Load(batchInput)
	if err != nil {
		return fmt.Errorf("loading %s: %w", batchInput, err)
	}

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}
	logger.Debug("evaluating designs", zap.Int("rows", len(rows)), zap.Int("workers", workers))

	results, err := batch.Evaluate(cmdContext(cmd), rows, workers, logger)
	if err != nil {
		return err
	}

	printTitle(out, "CLIMBING WALL BATCH")

	tw := printSection(out, "RESULTS")
	fmt.Fprintf(tw, "  Name\tH x W x D (m)\tAngle\tSheets\tSafe weight\tStatus\n")
	fmt.Fprintf(tw, "  ────\t─────────────\t─────\t──────\t───────────\t──────\n")
	for _, r := range results {
		dims := fmt.Sprintf("%.2f x %.2f x %.2f", r.Row.Height, r.Row.Width, r.Row.Depth)
		if !r.OK() {
			fmt.Fprintf(tw, "  %s\t%s\t-\t-\t-\t%s\n", r.Row.Name, dims, wall.KindName(r.Err))
			continue
		}
		fmt.Fprintf(tw, "  %s\t%s\t%.1f°\t%d\t%.1f kg\tOK\n",
			r.Row.Name, dims, r.Spec.AngleDegrees(), r.Materials.PlywoodSheets, r.Materials.SafeClimberWeightKg)
	}
	tw.Flush()
	fmt.Fprintln(out)

	passed, failed := batch.Summary(results)
	fmt.Fprintf(out, "  %d passed, %d failed\n\n", passed, failed)

	if batchOutput != "" {
		path := outputPath(batchOutput)
		if err := writeBatchResults(path, results); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		fmt.Fprintf(out, "Results written to: %s\n", path)
	}
	return nil
}

func writeBatchResults(path string, results []batch.Result) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := batch.WriteResults(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
