// Package main provides the CLI entrypoint for accessor-generator.
//
// accessor-generator reads struct declarations (Rust source selected by a
// marker attribute, or aggregates declared in a YAML file) and renders an
// impl block per struct with a constructor and a setter/getter pair per
// field, using signature types derived from the stored field types.
//
// Commands: gen | check | map | plan
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	strategy   string
	markerAttr string
	workers    int

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "accessor-generator",
	Short: "Generate constructors and accessors for struct declarations",
	Long: `accessor-generator synthesizes a constructor plus one setter and one getter
per named field for every selected struct, and renders them as impl blocks.

Declarations come from Rust source files given as arguments (or listed under
sources.files in the config) and from aggregates declared inline in the YAML
config. Field types are mapped to signature types by the selected strategy:

  full     String -> &str, Option<T> -> Option<map T>, Vec<T> -> &[map T],
           other paths -> their last segment
  shallow  String -> &str, everything else unchanged`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error

		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML declaration/options file")
	rootCmd.PersistentFlags().StringVar(&strategy, "strategy", "", "Signature mapping strategy (full|shallow), overrides the config")
	rootCmd.PersistentFlags().StringVar(&markerAttr, "marker-attr", "", "Only load structs carrying this attribute or derive, overrides the config")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Maximum concurrent synthesis workers (0 = unbounded)")

	rootCmd.AddCommand(genCmd, checkCmd, mapCmd, planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
