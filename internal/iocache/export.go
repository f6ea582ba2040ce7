package iocache

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/internal/parquet"
	"github.com/huangsam/commentiq/schema"
)

// ExecuteHistoryExport writes every history record to <outputFile>.history.parquet.
func ExecuteHistoryExport(ctx context.Context, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRecords == 0 {
		return errors.New("no history data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total history records: %d\n", status.TotalRecords)

	records, err := store.List(ctx, schema.HistoryFilter{})
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}

	rows := parquet.ConvertHistoryRecords(records)
	historyFile := outputFile + ".history.parquet"
	if err := parquet.WriteHistoryParquet(rows, historyFile); err != nil {
		return fmt.Errorf("failed to write history records: %w", err)
	}
	fmt.Printf("Exported %d history records to: %s\n", len(rows), historyFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
