package cmd

import (
	"fmt"

	"github.com/huangsam/commentiq/core"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/internal/iocache"
	"github.com/huangsam/commentiq/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendConfig resolves and validates the history backend settings.
func historyBackendConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'", backend)
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history maintenance.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}
	awsRegion := viper.GetString("aws-region")

	// Initialize stores with the loaded config (no result caching for history commands)
	if err := iocache.InitStores(iocache.StoreOptions{
		HistoryBackend:   backend,
		HistoryDBConnect: connStr,
		AWSRegion:        awsRegion,
	}); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.AWSRegion = awsRegion
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	backend, connStr, err := historyBackendConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// sqliteFilePath returns the SQLite file behind connStr, or the default path.
func sqliteFilePath(connStr, defaultPath string) string {
	if connStr != "" {
		return connStr
	}
	return defaultPath
}

// historyCmd focused on analysis history management.
//
// Note: Maintenance subcommands (status, clear, export, migrate) use minimal
// initialization instead of the full sharedSetup used by analysis commands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and manage saved comment analyses",
	Long: `Browse and manage the history of analyzed comments.

Every analyze, batch and fetch run saves its results unless --no-save is set.
Each record keeps the original text, its source (user or api), the API URL
it came from and the full analysis.

Supported backends: SQLite (default), MySQL, PostgreSQL, DynamoDB, or None (disabled)

Subcommands:
  list    - List records, newest first
  show    - Show one record
  delete  - Delete one record
  status  - Show history statistics
  clear   - Remove all history
  export  - Export history to Parquet
  migrate - Run database schema migrations

Examples:
  # Negative comments mentioning shipping
  commentiq history list --sentiment negative --search shipping

  # Export for analysis in pandas/DuckDB
  commentiq history export --output-file comments`,
}

// historyListCmd lists history records.
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved analyses, newest first",
	Long: `List history records, newest first, narrowed by --search, --sentiment,
--source and --api-url and capped by --limit.

Examples:
  # Last 10 fetched comments
  commentiq history list --source api --limit 10

  # Everything from one API as CSV
  commentiq history list --api-url https://api.example.com/reviews --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistoryList(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list history", err)
		}
	},
}

// historyShowCmd prints one history record.
var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one saved analysis",
	Long: `Show every field of one history record. Fetched records also show
how many comments were fetched from the same API URL.

Examples:
  commentiq history show 0f8fad5b-d9cb-469f-a165-70867728950e`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteHistoryShow(rootCtx, cfg, cacheManager, args[0]); err != nil {
			contract.LogFatal("Cannot show history record", err)
		}
	},
}

// historyDeleteCmd removes one history record.
var historyDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete one saved analysis",
	Long: `Delete one history record by id.

Examples:
  commentiq history delete 0f8fad5b-d9cb-469f-a165-70867728950e`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteHistoryDelete(rootCtx, cfg, cacheManager, args[0]); err != nil {
			contract.LogFatal("Cannot delete history record", err)
		}
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved analyses",
	Long: `Delete every stored history record.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the history and migration tables
For DynamoDB: Deletes the table

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  commentiq history export --output-file backup
  commentiq history clear`,
	Args:    cobra.NoArgs,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the open connection before removing the file
		iocache.CloseStores()
		dbFilePath := sqliteFilePath(cfg.HistoryDBConnect, contract.GetHistoryDBFilePath())
		if err := iocache.ClearHistory(cfg.HistoryBackend, dbFilePath, cfg.HistoryDBConnect, cfg.AWSRegion); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the history store.

Displays:
- Backend type and connection status
- Total number of records
- Newest and oldest record timestamps
- Record counts per source

Examples:
  # Check history status
  commentiq history status`,
	Args:    cobra.NoArgs,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(status)
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history to Parquet for BI tools and analytics",
	Long: `Export every history record to Parquet, written to <output-file>.history.parquet.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all history
  commentiq history export --output-file comments

  # Use with DuckDB for analysis
  duckdb -c "SELECT sentiment_label, count(*) FROM read_parquet('comments.history.parquet') GROUP BY 1"`,
	Args:    cobra.NoArgs,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(rootCtx, iocache.Manager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the SQL history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  commentiq history migrate

  # Migrate to specific version
  commentiq history migrate --target-version 1

  # Rollback to initial state
  commentiq history migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
