package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/gowall/internal/config"
	"github.com/alexiusacademia/gowall/internal/logging"
	"github.com/alexiusacademia/gowall/internal/version"
)

var (
	cfgFile string
	verbose bool

	// Set by PersistentPreRunE for every subcommand
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gowall",
	Short: "Climbing Wall Materials Calculator",
	Long: `gowall - Go Climbing Wall Designer

A CLI tool for the design of fixed-angle, timber-framed home
climbing walls.

From the wall height, width and available depth this tool:
  - Derives the wall angle and checks it against safety limits
  - Computes the timber cut list and joint angles for the A-frame
  - Estimates 18mm plywood sheet count
  - Rates the safe maximum climber weight
  - Renders ASCII and image diagrams, and text/PDF/XLSX reports

Dimensions are in meters.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Level, verbose)
		if err != nil {
			return err
		}
		logger.Debug("config loaded",
			zap.String("file", cfgFile),
			zap.String("command", cmd.CommandPath()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   gowall v%-48s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Go Climbing Wall Designer                               ║")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the design of timber-framed climbing walls.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Wall angle derivation and safety validation")
		fmt.Fprintln(out, "    • Timber cut list, joint angles and plywood sheet count")
		fmt.Fprintln(out, "    • Safe climber weight rating")
		fmt.Fprintln(out, "    • Angle sweeps and batch evaluation from spreadsheets")
		fmt.Fprintln(out, "    • HTTP API with text and PDF reports")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'gowall --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "gowall.yaml", "Config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
