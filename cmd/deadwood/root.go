package main

import (
	"github.com/spf13/cobra"

	"deadwood/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "deadwood",
	Short: "deadwood - dead code detector for Go",
	Long: `deadwood analyzes a Go module's SCIP index and source tree to find
declarations that are never referenced and can safely be removed.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("deadwood version {{.Version}}\n")
	rootCmd.AddCommand(analyzeCmd)
}
