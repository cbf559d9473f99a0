package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	fingerprintID  string
	fingerprintOut string
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file>",
	Short: "Compute the four-layer fingerprint of a document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		doc, err := loadDocument(args[0], cfg)
		exitOnError(err)

		id := fingerprintID
		if id == "" {
			id = filepath.ToSlash(args[0])
		}
		fp := newEngine(cfg).Fingerprint(doc, id)
		exitOnError(writeJSON(fp, fingerprintOut))
	},
}

func init() {
	fingerprintCmd.Flags().StringVar(&fingerprintID, "id", "", "document ID (defaults to the file path)")
	fingerprintCmd.Flags().StringVarP(&fingerprintOut, "out", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(fingerprintCmd)
}
