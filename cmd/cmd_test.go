package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{[]string{"analyze"}, "analyze"},
		{[]string{"batch"}, "batch"},
		{[]string{"fetch"}, "fetch"},
		{[]string{"corpus", "words"}, "words"},
		{[]string{"corpus", "keywords"}, "keywords"},
		{[]string{"report"}, "report"},
		{[]string{"history", "list"}, "list"},
		{[]string{"history", "show"}, "show"},
		{[]string{"history", "delete"}, "delete"},
		{[]string{"history", "status"}, "status"},
		{[]string{"history", "clear"}, "clear"},
		{[]string{"history", "export"}, "export"},
		{[]string{"history", "migrate"}, "migrate"},
		{[]string{"cache", "status"}, "status"},
		{[]string{"cache", "clear"}, "clear"},
		{[]string{"mcp"}, "mcp"},
		{[]string{"version"}, "version"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			found, _, err := rootCmd.Find(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, found.Name())
		})
	}
}

func TestCommandFlags(t *testing.T) {
	persistent := rootCmd.PersistentFlags()
	for _, name := range []string{
		"detail", "crosscheck", "limit", "output", "output-file", "precision", "workers",
		"width", "verbose", "file", "no-save", "search", "sentiment", "source", "api-url",
		"cache-backend", "cache-db-connect", "history-backend", "history-db-connect",
		"aws-region", "color", "config", "env-file",
	} {
		assert.NotNil(t, persistent.Lookup(name), "missing root flag %s", name)
	}

	for _, name := range []string{"report", "strip-markdown", "fetch-timeout", "fetch-interval", "fetch-token-url", "fetch-client-id", "fetch-client-secret", "fetch-scopes"} {
		assert.NotNil(t, fetchCmd.Flags().Lookup(name), "missing fetch flag %s", name)
	}
	assert.NotNil(t, corpusKeywordsCmd.Flags().Lookup("dominant"))
	assert.NotNil(t, corpusKeywordsCmd.Flags().Lookup("influential"))

	target := historyMigrateCmd.Flags().Lookup("target-version")
	require.NotNil(t, target)
	assert.Equal(t, "-1", target.DefValue)
}

func TestSqliteFilePath(t *testing.T) {
	assert.Equal(t, "/tmp/custom.db", sqliteFilePath("/tmp/custom.db", "/home/default.db"))
	assert.Equal(t, "/home/default.db", sqliteFilePath("", "/home/default.db"))
}
