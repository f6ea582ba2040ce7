package cmd

import (
	"github.com/huangsam/commentiq/core"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd analyzes comments given on the command line.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze one or more comments.",
	Long: `Analyze each argument as a separate comment.

For every comment, CommentIQ computes:
- Sentiment score, label and confidence
- An extractive summary and its compression ratio
- Key phrases
- Word, sentence and readability statistics

Without arguments, comments are read one per line from --file or stdin.
Results are saved to history unless --no-save is set.

Examples:
  # Analyze a single comment
  commentiq analyze "The battery life is amazing but the screen scratches easily."

  # Show summary and statistics columns
  commentiq analyze --detail "Great support team. Fast replies."

  # Pipe comments in and emit JSON
  cat comments.txt | commentiq analyze --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, cacheManager, args); err != nil {
			contract.LogFatal("Cannot run analysis", err)
		}
	},
}

// batchCmd analyzes a file of comments.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze a file with one comment per line.",
	Long: `Analyze every non-blank line of --file as a comment, using --workers in parallel.

Lines that cannot be analyzed are reported with their line number
and do not abort the batch. Output keeps the order of the file.

Examples:
  # Analyze a file with 8 workers
  commentiq batch --file reviews.txt --workers 8

  # Export results to CSV without saving history
  commentiq batch --file reviews.txt --no-save --output csv --output-file reviews.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run batch analysis", err)
		}
	},
}

// fetchCmd fetches comments from JSON APIs and analyzes them.
var fetchCmd = &cobra.Command{
	Use:   "fetch URL...",
	Short: "Fetch comments from JSON APIs and analyze them.",
	Long: `Fetch comments from each URL and analyze them as one batch per URL.

Accepted response shapes:
- An array of strings or objects with body, comment, text, content or message
- An object with a "comments" or "data" array

Comments of 10 characters or fewer are skipped. Requests are throttled by
--fetch-interval and can authenticate with OAuth2 client credentials.

Examples:
  # Analyze comments from a public API
  commentiq fetch https://jsonplaceholder.typicode.com/comments

  # Strip Markdown and print a plain-text report
  commentiq fetch --strip-markdown --report https://api.example.com/reviews

  # Authenticate with client credentials from the environment
  COMMENTIQ_FETCH_CLIENT_SECRET=... commentiq fetch \
    --fetch-token-url https://auth.example.com/token --fetch-client-id cli \
    https://api.example.com/comments`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteFetch(rootCtx, cfg, cacheManager, args); err != nil {
			contract.LogFatal("Cannot fetch comments", err)
		}
	},
}
