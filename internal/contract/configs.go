package contract

import (
	"fmt"
	"net"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/commentiq/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit   = 25
	MaxResultLimit       = 1000
	DefaultPrecision     = 2
	DefaultFetchTimeout  = 30 * time.Second
	DefaultFetchInterval = 750 * time.Millisecond
	DefaultAWSRegion     = "us-east-1"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// OAuthConfig holds client-credentials settings for authenticated fetches.
type OAuthConfig struct {
	TokenURL     string
	ClientID     string
	ClientSecret string // Please use env var as this is plaintext
	Scopes       []string
}

// Enabled reports whether enough settings exist to request tokens.
func (o OAuthConfig) Enabled() bool {
	return o.TokenURL != "" && o.ClientID != ""
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	Workers    int
	Precision  int
	Limit      int
	Width      int // Terminal width override (0 = auto-detect)
	Output     schema.OutputMode
	OutputFile string
	InputFile  string
	Detail     bool
	UseColors  bool
	Crosscheck bool // Add VADER compound scores next to lexicon scores
	Verbose    bool
	NoSave     bool

	// Filter narrows history reads for list, corpus and report commands
	Filter schema.HistoryFilter

	Report      bool                  // Print the plain-text report after fetching
	Dominant    schema.SentimentLabel // Keep keywords dominated by this label
	Influential bool                  // Rank keywords by influence instead of occurrences

	FetchTimeout  time.Duration
	FetchInterval time.Duration
	StripMarkdown bool
	OAuth         OAuthConfig

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	AWSRegion string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Limit            int    `mapstructure:"limit"`
	Width            int    `mapstructure:"width"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Detail           bool   `mapstructure:"detail"`
	Color            string `mapstructure:"color"`
	Crosscheck       bool   `mapstructure:"crosscheck"`
	Verbose          bool   `mapstructure:"verbose"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	AWSRegion        string `mapstructure:"aws-region"`

	// --- Fields from analyze/batch/fetch flags ---
	File              string `mapstructure:"file"`
	NoSave            bool   `mapstructure:"no-save"`
	FetchTimeout      string `mapstructure:"fetch-timeout"`
	FetchInterval     string `mapstructure:"fetch-interval"`
	StripMarkdown     bool   `mapstructure:"strip-markdown"`
	FetchTokenURL     string `mapstructure:"fetch-token-url"`
	FetchClientID     string `mapstructure:"fetch-client-id"`
	FetchClientSecret string `mapstructure:"fetch-client-secret"`
	FetchScopes       string `mapstructure:"fetch-scopes"`

	// --- Fields from history/corpus/report flags ---
	Search    string `mapstructure:"search"`
	Sentiment string `mapstructure:"sentiment"`
	Source    string `mapstructure:"source"`
	APIURL    string `mapstructure:"api-url"`

	// --- Fields from fetch/corpus flags ---
	Report      bool   `mapstructure:"report"`
	Dominant    string `mapstructure:"dominant"`
	Influential bool   `mapstructure:"influential"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.OAuth.Scopes != nil {
		clone.OAuth.Scopes = make([]string, len(c.OAuth.Scopes))
		copy(clone.OAuth.Scopes, c.OAuth.Scopes)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processHistoryFilter(cfg, input); err != nil {
		return err
	}
	if err := processFetchSettings(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of connection strings
// for each storage backend.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	case schema.ValkeyBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if _, _, err := net.SplitHostPort(connStr); err != nil {
			return fmt.Errorf("valkey connection string must be host:port: %w", err)
		}
	case schema.DynamoDBBackend:
		// Empty means the default AWS endpoint for the configured region
		if connStr != "" && !strings.HasPrefix(connStr, "http://") && !strings.HasPrefix(connStr, "https://") {
			return fmt.Errorf("DynamoDB endpoint override must start with http:// or https://")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, valkey, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, dynamodb, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	cfg.AWSRegion = input.AWSRegion
	if cfg.AWSRegion == "" {
		cfg.AWSRegion = DefaultAWSRegion
	}

	// Cache and history tables live in separate SQLite files
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath && cacheDBPath != ":memory:" {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all output and execution fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.InputFile = input.File
	cfg.Detail = input.Detail
	cfg.Crosscheck = input.Crosscheck
	cfg.Verbose = input.Verbose
	cfg.NoSave = input.NoSave
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	return nil
}

// processHistoryFilter builds the history filter shared by read commands.
func processHistoryFilter(cfg *Config, input *ConfigRawInput) error {
	label, ok := schema.ParseSentimentLabel(input.Sentiment)
	if !ok {
		return fmt.Errorf("invalid sentiment '%s'. must be positive, negative, neutral", input.Sentiment)
	}
	source, ok := schema.ParseSource(input.Source)
	if !ok {
		return fmt.Errorf("invalid source '%s'. must be user, api", input.Source)
	}
	dominant, ok := schema.ParseSentimentLabel(input.Dominant)
	if !ok {
		return fmt.Errorf("invalid dominant sentiment '%s'. must be positive, negative, neutral", input.Dominant)
	}
	cfg.Dominant = dominant
	cfg.Influential = input.Influential
	if cfg.Dominant != "" && cfg.Influential {
		return fmt.Errorf("--dominant and --influential cannot be used together")
	}
	cfg.Report = input.Report

	cfg.Filter = schema.HistoryFilter{
		Search: strings.TrimSpace(input.Search),
		Label:  label,
		Source: source,
		APIURL: strings.TrimSpace(input.APIURL),
		Limit:  cfg.Limit,
	}
	return nil
}

// processFetchSettings parses transport timing and optional OAuth settings.
func processFetchSettings(cfg *Config, input *ConfigRawInput) error {
	cfg.StripMarkdown = input.StripMarkdown

	timeout, err := parseDurationOr(input.FetchTimeout, DefaultFetchTimeout)
	if err != nil {
		return fmt.Errorf("invalid --fetch-timeout: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("fetch-timeout must be greater than 0 (received %s)", timeout)
	}
	cfg.FetchTimeout = timeout

	interval, err := parseDurationOr(input.FetchInterval, DefaultFetchInterval)
	if err != nil {
		return fmt.Errorf("invalid --fetch-interval: %w", err)
	}
	if interval < 0 {
		return fmt.Errorf("fetch-interval cannot be negative (received %s)", interval)
	}
	cfg.FetchInterval = interval

	cfg.OAuth = OAuthConfig{
		TokenURL:     strings.TrimSpace(input.FetchTokenURL),
		ClientID:     strings.TrimSpace(input.FetchClientID),
		ClientSecret: input.FetchClientSecret,
	}
	for s := range strings.SplitSeq(input.FetchScopes, ",") {
		if s = strings.TrimSpace(s); s != "" {
			cfg.OAuth.Scopes = append(cfg.OAuth.Scopes, s)
		}
	}
	if cfg.OAuth.TokenURL != "" && cfg.OAuth.ClientID == "" {
		return fmt.Errorf("fetch-client-id is required when fetch-token-url is set")
	}

	return nil
}

func parseDurationOr(s string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return time.ParseDuration(strings.TrimSpace(s))
}
