package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "praetor",
	Short: "Praetor - statute definition language compiler and registry",
	Long: `Praetor compiles legal statutes written in the Statute Definition
Language (SDL) into a structured form that downstream systems can
evaluate.

It provides:
  - A parser with precise source locations and typo suggestions
  - Deprecation warnings for superseded syntax
  - JSON and YAML serialization of parsed statutes
  - A registry with filesystem watching and hot reload
  - An append-only history archive for statute lifecycle events`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
