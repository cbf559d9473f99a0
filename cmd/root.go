// Package cmd implements the docforensics command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "docforensics",
	Short: "Tamper, derivation, and duplicate detection for structured documents",
	Long: `doc-forensics detects and scores tampering, derivation, and duplication
between structured financial documents. It fingerprints decoded JSON
document trees for corpus-wide similarity search and performs exhaustive
pairwise diffs with fraud-risk scoring.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docforensics.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
