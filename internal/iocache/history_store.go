package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
)

// historyColumns lists every persisted column except the seq ordering key.
var historyColumns = []string{
	"id", "original_text", "source", "api_url", "created_at",
	"sentiment_score", "sentiment_label", "confidence",
	"summary_text", "compression_ratio", "summary_word_count",
	"word_count", "sentence_count", "avg_word_length", "readability_score",
	"key_phrases",
}

// HistoryStoreImpl persists analyzed comments in a SQL database.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore opens the history database and migrates it to the latest schema.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled history
		return &HistoryStoreImpl{backend: backend}, nil
	}
	if !backend.IsSQL() {
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}

	db, err := openSQL(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := migrateToLatest(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// historyRow is the flat SQL shape of a CommentAnalysis.
type historyRow struct {
	ID               string
	OriginalText     string
	Source           string
	APIURL           string
	CreatedAt        int64
	SentimentScore   float64
	SentimentLabel   string
	Confidence       float64
	SummaryText      string
	CompressionRatio int
	SummaryWordCount int
	WordCount        int
	SentenceCount    int
	AvgWordLength    float64
	ReadabilityScore int
	KeyPhrases       string
}

// toHistoryRow flattens a record for insertion.
func toHistoryRow(r schema.CommentAnalysis) (historyRow, error) {
	phrases := r.KeyPhrases
	if phrases == nil {
		phrases = []string{}
	}
	encoded, err := json.Marshal(phrases)
	if err != nil {
		return historyRow{}, fmt.Errorf("failed to encode key phrases for %s: %w", r.ID, err)
	}
	return historyRow{
		ID:               r.ID,
		OriginalText:     r.OriginalText,
		Source:           string(r.Source),
		APIURL:           r.APIURL,
		CreatedAt:        r.Timestamp.UnixMilli(),
		SentimentScore:   r.Sentiment.Score,
		SentimentLabel:   string(r.Sentiment.Label),
		Confidence:       r.Sentiment.Confidence,
		SummaryText:      r.Summary.Text,
		CompressionRatio: r.Summary.CompressionRatio,
		SummaryWordCount: r.Summary.WordCount,
		WordCount:        r.Statistics.OriginalWordCount,
		SentenceCount:    r.Statistics.SentenceCount,
		AvgWordLength:    r.Statistics.AvgWordLength,
		ReadabilityScore: r.Statistics.ReadabilityScore,
		KeyPhrases:       string(encoded),
	}, nil
}

// args returns the row values in historyColumns order.
func (row historyRow) args() []any {
	return []any{
		row.ID, row.OriginalText, row.Source, row.APIURL, row.CreatedAt,
		row.SentimentScore, row.SentimentLabel, row.Confidence,
		row.SummaryText, row.CompressionRatio, row.SummaryWordCount,
		row.WordCount, row.SentenceCount, row.AvgWordLength, row.ReadabilityScore,
		row.KeyPhrases,
	}
}

// dest returns scan targets in historyColumns order.
func (row *historyRow) dest() []any {
	return []any{
		&row.ID, &row.OriginalText, &row.Source, &row.APIURL, &row.CreatedAt,
		&row.SentimentScore, &row.SentimentLabel, &row.Confidence,
		&row.SummaryText, &row.CompressionRatio, &row.SummaryWordCount,
		&row.WordCount, &row.SentenceCount, &row.AvgWordLength, &row.ReadabilityScore,
		&row.KeyPhrases,
	}
}

// decode rebuilds a record, rejecting rows whose enums or phrase list are corrupt.
func (row historyRow) decode() (schema.CommentAnalysis, error) {
	label := schema.SentimentLabel(row.SentimentLabel)
	if _, ok := schema.ValidSentimentLabels[label]; !ok {
		return schema.CommentAnalysis{}, fmt.Errorf("record %s has invalid sentiment label %q", row.ID, row.SentimentLabel)
	}
	source := schema.Source(row.Source)
	if _, ok := schema.ValidSources[source]; !ok {
		return schema.CommentAnalysis{}, fmt.Errorf("record %s has invalid source %q", row.ID, row.Source)
	}
	var phrases []string
	if err := json.Unmarshal([]byte(row.KeyPhrases), &phrases); err != nil {
		return schema.CommentAnalysis{}, fmt.Errorf("record %s has corrupt key phrases: %w", row.ID, err)
	}
	if phrases == nil {
		phrases = []string{}
	}

	return schema.CommentAnalysis{
		ID:           row.ID,
		OriginalText: row.OriginalText,
		Source:       source,
		APIURL:       row.APIURL,
		Timestamp:    time.UnixMilli(row.CreatedAt),
		AnalysisResult: schema.AnalysisResult{
			Sentiment: schema.Sentiment{
				Score:      row.SentimentScore,
				Label:      label,
				Confidence: row.Confidence,
			},
			Summary: schema.Summary{
				Text:             row.SummaryText,
				CompressionRatio: row.CompressionRatio,
				WordCount:        row.SummaryWordCount,
			},
			Statistics: schema.Statistics{
				OriginalWordCount: row.WordCount,
				SentenceCount:     row.SentenceCount,
				AvgWordLength:     row.AvgWordLength,
				ReadabilityScore:  row.ReadabilityScore,
			},
			KeyPhrases: phrases,
		},
	}, nil
}

// getInsertQuery returns the INSERT statement for the backend.
func (hs *HistoryStoreImpl) getInsertQuery() string {
	marks := make([]string, len(historyColumns))
	for i := range historyColumns {
		marks[i] = placeholder(hs.backend, i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteTableName(historyTable, hs.backend),
		strings.Join(historyColumns, ", "),
		strings.Join(marks, ", "))
}

// Save inserts records in one transaction. The batch is written back to front
// so that its first record receives the highest seq and lists first.
func (hs *HistoryStoreImpl) Save(ctx context.Context, records ...schema.CommentAnalysis) error {
	if hs.backend == schema.NoneBackend || hs.db == nil || len(records) == 0 {
		return nil
	}

	tx, err := hs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, hs.getInsertQuery())
	if err != nil {
		return fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := len(records) - 1; i >= 0; i-- {
		row, err := toHistoryRow(records[i])
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, row.args()...); err != nil {
			return fmt.Errorf("failed to insert history record %s: %w", records[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history records: %w", err)
	}
	return nil
}

// List returns records newest first. Exact-match criteria are pushed into SQL;
// the free-text search and limit are applied to decoded rows only.
func (hs *HistoryStoreImpl) List(ctx context.Context, filter schema.HistoryFilter) ([]schema.CommentAnalysis, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return []schema.CommentAnalysis{}, nil
	}

	var where []string
	var args []any
	addClause := func(column string, value string) {
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = %s", column, placeholder(hs.backend, len(args))))
	}
	if filter.Label != "" {
		addClause("sentiment_label", string(filter.Label))
	}
	if filter.Source != "" {
		addClause("source", string(filter.Source))
	}
	if filter.APIURL != "" {
		addClause("api_url", filter.APIURL)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(historyColumns, ", "), quoteTableName(historyTable, hs.backend))
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY seq DESC"

	rows, err := hs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.CommentAnalysis
	for rows.Next() {
		var row historyRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		record, err := row.decode()
		if err != nil {
			contract.LogWarn("Skipping unreadable history record", err)
			continue
		}
		if !filter.Matches(record) {
			continue
		}
		records = append(records, record)
		if filter.Limit > 0 && len(records) == filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history records: %w", err)
	}

	if records == nil {
		records = []schema.CommentAnalysis{}
	}
	return records, nil
}

// Get returns the record with the given id.
func (hs *HistoryStoreImpl) Get(ctx context.Context, id string) (schema.CommentAnalysis, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return schema.CommentAnalysis{}, contract.ErrRecordNotFound
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = %s",
		strings.Join(historyColumns, ", "), quoteTableName(historyTable, hs.backend), placeholder(hs.backend, 1))

	var row historyRow
	if err := hs.db.QueryRowContext(ctx, query, id).Scan(row.dest()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schema.CommentAnalysis{}, fmt.Errorf("%w: %s", contract.ErrRecordNotFound, id)
		}
		return schema.CommentAnalysis{}, fmt.Errorf("failed to get history record %s: %w", id, err)
	}
	return row.decode()
}

// Delete removes the record with the given id.
func (hs *HistoryStoreImpl) Delete(ctx context.Context, id string) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", quoteTableName(historyTable, hs.backend), placeholder(hs.backend, 1))
	if _, err := hs.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete history record %s: %w", id, err)
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
		BySource:  make(map[schema.Source]int),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(historyTable, hs.backend)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := hs.db.QueryRow(countQuery).Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to get total records: %w", err)
	}

	if status.TotalRecords == 0 {
		return status, nil
	}

	rangeQuery := fmt.Sprintf("SELECT MAX(created_at), MIN(created_at) FROM %s", quotedTableName)
	var lastMs, oldestMs int64
	if err := hs.db.QueryRow(rangeQuery).Scan(&lastMs, &oldestMs); err != nil {
		return status, fmt.Errorf("failed to get record time range: %w", err)
	}
	status.LastRecordTime = time.UnixMilli(lastMs)
	status.OldestRecordTime = time.UnixMilli(oldestMs)

	sourceQuery := fmt.Sprintf("SELECT source, COUNT(*) FROM %s GROUP BY source", quotedTableName)
	rows, err := hs.db.Query(sourceQuery)
	if err != nil {
		return status, fmt.Errorf("failed to count records by source: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return status, fmt.Errorf("failed to scan source count: %w", err)
		}
		status.BySource[schema.Source(source)] = count
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("error iterating source counts: %w", err)
	}

	return status, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
