package cmd

import (
	"github.com/huangsam/commentiq/core"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd renders a plain-text report over the analysis history.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a plain-text analysis report",
	Long: `Render a plain-text report over history records matching --search,
--sentiment, --source and --api-url.

The report has an overview, a sentiment breakdown and a detailed
section per comment. Setting --api-url names that URL as the source.

Examples:
  # Report on one fetched batch
  commentiq report --api-url https://api.example.com/reviews

  # Save a report of negative comments
  commentiq report --sentiment negative --output-file negative.txt`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot write report", err)
		}
	},
}
