package schema

// Custom string types for type safety.
type (
	// SentimentLabel represents the polarity bucket of a text.
	SentimentLabel string

	// Source represents where a comment came from.
	Source string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// All sentiment labels supported.
const (
	Positive SentimentLabel = "positive"
	Negative SentimentLabel = "negative"
	Neutral  SentimentLabel = "neutral"
)

// All comment sources supported.
const (
	UserSource Source = "user"
	APISource  Source = "api"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	ValkeyBackend     DatabaseBackend = "valkey"
	DynamoDBBackend   DatabaseBackend = "dynamodb"
	NoneBackend       DatabaseBackend = "none"
)

// AllSentimentLabels lists labels in report order.
var AllSentimentLabels = []SentimentLabel{Positive, Neutral, Negative}

// ValidSentimentLabels lists all valid sentiment labels.
var ValidSentimentLabels = map[SentimentLabel]struct{}{
	Positive: {},
	Negative: {},
	Neutral:  {},
}

// ValidSources lists all valid comment sources.
var ValidSources = map[Source]struct{}{
	UserSource: {},
	APISource:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidCacheBackends lists all valid result cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	ValkeyBackend:     {},
	NoneBackend:       {},
}

// ValidHistoryBackends lists all valid history backends.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	DynamoDBBackend:   {},
	NoneBackend:       {},
}

// IsSQL reports whether the backend is served through database/sql.
func (b DatabaseBackend) IsSQL() bool {
	switch b {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend:
		return true
	default:
		return false
	}
}
