package schema

import "time"

// CacheStatus represents the status of the result cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend          string         `json:"backend"`
	Connected        bool           `json:"connected"`
	TotalRecords     int            `json:"total_records"`
	LastRecordTime   time.Time      `json:"last_record_time"`
	OldestRecordTime time.Time      `json:"oldest_record_time"`
	BySource         map[Source]int `json:"by_source"`
}
