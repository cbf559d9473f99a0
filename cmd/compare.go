package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

var compareOut string

var compareCmd = &cobra.Command{
	Use:   "compare <original> <current>",
	Short: "Run a forensic field-level comparison of two document versions",
	Long: `Compare diffs two snapshots of a document field by field, classifies
each change by fraud-risk category, and emits the scored result.
Direction matters: the first file is treated as the original.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		doc1, err := loadDocument(args[0], cfg)
		exitOnError(err)
		doc2, err := loadDocument(args[1], cfg)
		exitOnError(err)

		comparator, err := newComparator(cfg)
		exitOnError(err)

		result := comparator.CompareDocuments(doc1, doc2,
			filepath.ToSlash(args[0]), filepath.ToSlash(args[1]), nil, nil)
		exitOnError(writeJSON(result, compareOut))
	},
}

func init() {
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(compareCmd)
}
