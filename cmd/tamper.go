package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

var tamperOut string

var tamperCmd = &cobra.Command{
	Use:   "tamper <original> <current>",
	Short: "Classify which fingerprint layer changed between two versions",
	Long: `Tamper fingerprints both files and reports the highest-priority layer
that differs: structure first, then content, then style. Lower-priority
changes are masked when a higher-priority layer fires.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		doc1, err := loadDocument(args[0], cfg)
		exitOnError(err)
		doc2, err := loadDocument(args[1], cfg)
		exitOnError(err)

		engine := newEngine(cfg)
		original := engine.Fingerprint(doc1, filepath.ToSlash(args[0]))
		current := engine.Fingerprint(doc2, filepath.ToSlash(args[1]))
		exitOnError(writeJSON(engine.DetectPartialTampering(original, current), tamperOut))
	},
}

func init() {
	tamperCmd.Flags().StringVarP(&tamperOut, "out", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(tamperCmd)
}
