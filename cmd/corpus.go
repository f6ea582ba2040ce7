package cmd

import (
	"github.com/huangsam/commentiq/core"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/spf13/cobra"
)

// corpusCmd groups aggregations over the analysis history.
var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Aggregate words and keywords across analyzed comments",
	Long: `Aggregate the comments stored in history into corpus-level views.

The corpus is every history record matching --search, --sentiment,
--source and --api-url. At least two records are needed.

Subcommands:
  words    - Most frequent words
  keywords - Keywords linked to comment sentiment

Examples:
  # Top words across one fetched batch
  commentiq corpus words --api-url https://api.example.com/reviews

  # Keywords that mostly appear in negative comments
  commentiq corpus keywords --dominant negative`,
}

// corpusWordsCmd ranks word frequencies.
var corpusWordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Rank the most frequent words in the corpus",
	Long: `Count words across the corpus, ignoring stop words and words of
two characters or fewer. Percentages are relative to all counted words.

Examples:
  # Top 10 words in user comments
  commentiq corpus words --source user --limit 10`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCorpusWords(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run corpus words", err)
		}
	},
}

// corpusKeywordsCmd links keywords to sentiment.
var corpusKeywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Link keywords to the sentiment of their comments",
	Long: `Tally, for each keyword, how many positive, neutral and negative comments
contain it. Keywords found in a single comment are dropped.

Use --dominant to keep keywords dominated by one label, or --influential
to rank keywords by |score| x occurrences.

Examples:
  # Keywords driving positive feedback
  commentiq corpus keywords --dominant positive --limit 10

  # Most influential keywords as JSON
  commentiq corpus keywords --influential --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCorpusKeywords(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run corpus keywords", err)
		}
	},
}
