// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/commentiq/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the CommentIQ MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"CommentIQ Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	filterOptions := func(opts ...mcp.ToolOption) []mcp.ToolOption {
		return append(opts,
			mcp.WithString("search", mcp.Description("Case-insensitive text, label or source substring.")),
			mcp.WithString("sentiment", mcp.Description("Keep records with this label."), mcp.Enum("positive", "negative", "neutral")),
			mcp.WithString("source", mcp.Description("Keep records from this source."), mcp.Enum("user", "api")),
			mcp.WithString("api_url", mcp.Description("Keep records fetched from this exact API URL.")),
			mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
		)
	}

	// --- 1. Tool: analyze_text ---
	s.AddTool(mcp.NewTool("analyze_text",
		mcp.WithDescription("Analyze one comment for sentiment, summary, key phrases and readability."),
		mcp.WithString("text", mcp.Description("The comment text to analyze."), mcp.Required()),
		mcp.WithBoolean("save", mcp.Description("Save the analysis to history. Defaults to false.")),
	), h.handleAnalyzeText)

	// --- 2. Tool: analyze_batch ---
	s.AddTool(mcp.NewTool("analyze_batch",
		mcp.WithDescription("Analyze many comments at once, one comment per line."),
		mcp.WithString("texts", mcp.Description("Newline separated comments. Blank lines are skipped."), mcp.Required()),
		mcp.WithBoolean("save", mcp.Description("Save the analyses to history. Defaults to false.")),
	), h.handleAnalyzeBatch)

	// --- 3. Tool: fetch_comments ---
	s.AddTool(mcp.NewTool("fetch_comments",
		mcp.WithDescription("Fetch comments from a JSON API and analyze each of them."),
		mcp.WithString("url", mcp.Description("The API URL returning comments as JSON."), mcp.Required()),
		mcp.WithBoolean("strip_markdown", mcp.Description("Strip Markdown formatting before analysis.")),
		mcp.WithBoolean("save", mcp.Description("Save the analyses to history. Defaults to false.")),
	), h.handleFetchComments)

	// --- 4. Tool: corpus_words ---
	s.AddTool(mcp.NewTool("corpus_words",
		filterOptions(mcp.WithDescription("Rank the most frequent words across analyzed comments in history."))...,
	), h.handleCorpusWords)

	// --- 5. Tool: corpus_keywords ---
	s.AddTool(mcp.NewTool("corpus_keywords",
		filterOptions(
			mcp.WithDescription("Link keywords to the sentiment of the comments they appear in."),
			mcp.WithString("dominant", mcp.Description("Keep keywords dominated by this label."), mcp.Enum("positive", "negative", "neutral")),
			mcp.WithBoolean("influential", mcp.Description("Rank keywords by sentiment influence.")),
		)...,
	), h.handleCorpusKeywords)

	// --- 6. Tool: list_history ---
	s.AddTool(mcp.NewTool("list_history",
		filterOptions(mcp.WithDescription("List previously analyzed comments, newest first."))...,
	), h.handleListHistory)

	// --- 7. Tool: get_report ---
	s.AddTool(mcp.NewTool("get_report",
		filterOptions(mcp.WithDescription("Render a plain-text analysis report over history. Set api_url to report on one fetched batch."))...,
	), h.handleGetReport)

	return s
}

// StartMCPServer starts the CommentIQ MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
