package cmd

import (
	"github.com/spf13/cobra"
)

var overlayOut string

var overlayCmd = &cobra.Command{
	Use:   "overlay <original> <current>",
	Short: "Emit the rendering overlay for a document comparison",
	Long: `Overlay reshapes the comparison into the structure a presentation layer
renders: changes grouped into additions, deletions, and modifications,
with a color per risk band and a lookup by field path.`,
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
		exitOnError(writeJSON(comparator.GenerateDiffOverlay(doc1, doc2), overlayOut))
	},
}

func init() {
	overlayCmd.Flags().StringVarP(&overlayOut, "out", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(overlayCmd)
}
