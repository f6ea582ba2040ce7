package iocache

import (
	"fmt"
	"slices"

	"github.com/huangsam/commentiq/schema"
)

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s\n", status.LastEntryTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Entry: %s\n", status.OldestEntryTime.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}

// PrintHistoryStatus prints history status information.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Records: %d\n", status.TotalRecords)
	if status.TotalRecords == 0 {
		return
	}
	fmt.Printf("Last Record: %s\n", status.LastRecordTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("Oldest Record: %s\n", status.OldestRecordTime.Format("2006-01-02 15:04:05"))
	fmt.Println("Records by Source:")
	sources := make([]string, 0, len(status.BySource))
	for source := range status.BySource {
		sources = append(sources, string(source))
	}
	slices.Sort(sources)
	for _, source := range sources {
		fmt.Printf("  %s: %d\n", source, status.BySource[schema.Source(source)])
	}
}
