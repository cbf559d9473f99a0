package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doc-forensics/internal/report"
)

var (
	reportHTML bool
	reportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report <original> <current>",
	Short: "Render a forensic comparison as a markdown or HTML report",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		doc1, err := loadDocument(args[0], cfg)
		exitOnError(err)
		doc2, err := loadDocument(args[1], cfg)
		exitOnError(err)

		comparator, err := newComparator(cfg)
		exitOnError(err)

		diff := comparator.CompareDocuments(doc1, doc2,
			filepath.ToSlash(args[0]), filepath.ToSlash(args[1]), nil, nil)
		meta := comparator.ExtractModificationMetadata(diff)

		var rendered string
		if reportHTML {
			rendered, err = report.HTML(diff, meta)
			exitOnError(err)
		} else {
			rendered = report.Markdown(diff, meta)
		}

		if reportOut == "" {
			fmt.Print(rendered)
			return
		}
		exitOnError(os.WriteFile(reportOut, []byte(rendered), 0644))
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportHTML, "html", false, "render HTML instead of markdown")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
