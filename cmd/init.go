package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/doc-forensics/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a .docforensics.yml configuration",
	Run: func(cmd *cobra.Command, args []string) {
		_, err := config.RunWizard()
		exitOnError(err)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
