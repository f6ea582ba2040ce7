// Package cmd defines the command-line interface for commentiq.
package cmd

import (
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(corpusCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the corpus subcommands to the parent corpus command
	corpusCmd.AddCommand(corpusWordsCmd)
	corpusCmd.AddCommand(corpusKeywordsCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print summary, key phrases and text statistics")
	rootCmd.PersistentFlags().Bool("crosscheck", false, "Add a VADER compound score next to each lexicon score")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("file", "f", "", "Read one comment per line from this file (- for stdin)")
	rootCmd.PersistentFlags().Bool("no-save", false, "Do not save analyses to history")
	rootCmd.PersistentFlags().String("search", "", "Keep history records whose text, label or source contains this")
	rootCmd.PersistentFlags().String("sentiment", "", "Keep history records with this label: positive or negative or neutral")
	rootCmd.PersistentFlags().String("source", "", "Keep history records from this source: user or api")
	rootCmd.PersistentFlags().String("api-url", "", "Keep history records fetched from this exact API URL")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or valkey or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname) or valkey (host:port)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or dynamodb or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Connection string for history (dynamodb: optional endpoint override)")
	rootCmd.PersistentFlags().String("aws-region", contract.DefaultAWSRegion, "AWS region for the dynamodb history backend")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "Path to a dotenv file with COMMENTIQ_* variables")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of fetchCmd to Viper
	fetchCmd.Flags().Bool("report", false, "Print a plain-text report for each URL after the results")
	fetchCmd.Flags().Bool("strip-markdown", false, "Strip Markdown formatting from fetched comments")
	fetchCmd.Flags().String("fetch-timeout", contract.DefaultFetchTimeout.String(), "Timeout for each API request")
	fetchCmd.Flags().String("fetch-interval", contract.DefaultFetchInterval.String(), "Minimum delay between API requests (0 disables throttling)")
	fetchCmd.Flags().String("fetch-token-url", "", "OAuth2 token URL for client-credentials auth")
	fetchCmd.Flags().String("fetch-client-id", "", "OAuth2 client id")
	fetchCmd.Flags().String("fetch-client-secret", "", "OAuth2 client secret (prefer COMMENTIQ_FETCH_CLIENT_SECRET)")
	fetchCmd.Flags().String("fetch-scopes", "", "Comma-separated OAuth2 scopes")
	if err := viper.BindPFlags(fetchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding fetch flags", err)
	}

	// Bind all flags of corpusKeywordsCmd to Viper
	corpusKeywordsCmd.Flags().String("dominant", "", "Keep keywords dominated by this label: positive or negative or neutral")
	corpusKeywordsCmd.Flags().Bool("influential", false, "Rank keywords by sentiment influence")
	if err := viper.BindPFlags(corpusKeywordsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding corpus keywords flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
