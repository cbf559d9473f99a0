package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doc-forensics/internal/corpus"
	"github.com/ziadkadry99/doc-forensics/internal/fingerprint"
	"github.com/ziadkadry99/doc-forensics/internal/progress"
)

var (
	similarThreshold float64
	similarOut       string
)

var similarCmd = &cobra.Command{
	Use:   "similar <target> <corpus-dir>",
	Short: "Find documents in a corpus similar to the target",
	Long: `Similar fingerprints every JSON document under the corpus directory and
ranks those whose overall similarity to the target meets the threshold.
Duplicates and derivatives are flagged in the results.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		exitOnError(err)

		doc, err := loadDocument(args[0], cfg)
		exitOnError(err)

		engine := newEngine(cfg)
		var reporter progress.Reporter = progress.NewReporter()
		if quiet {
			reporter = progress.Silent{}
		}
		loader := &corpus.Loader{
			Engine:   engine,
			Limits:   limitsFromConfig(cfg),
			Include:  cfg.Include,
			Exclude:  cfg.Exclude,
			Reporter: reporter,
		}
		index, err := loader.Load(args[1])
		exitOnError(err)

		threshold := similarThreshold
		if !cmd.Flags().Changed("threshold") {
			threshold = cfg.SimilarityThreshold
		}
		target := engine.Fingerprint(doc, filepath.ToSlash(args[0]))
		results := engine.FindSimilarDocuments(target, index.Fingerprints, threshold)

		out := struct {
			RunID   string                          `json:"run_id"`
			Target  string                          `json:"target"`
			Matches []*fingerprint.SimilarityResult `json:"matches"`
			Skipped []corpus.SkippedFile            `json:"skipped,omitempty"`
		}{RunID: index.RunID, Target: target.DocumentID, Matches: results, Skipped: index.Skipped}
		exitOnError(writeJSON(out, similarOut))
	},
}

func init() {
	similarCmd.Flags().Float64Var(&similarThreshold, "threshold", 0.7, "minimum overall similarity")
	similarCmd.Flags().StringVarP(&similarOut, "out", "o", "", "write output to file instead of stdout")
	rootCmd.AddCommand(similarCmd)
}
