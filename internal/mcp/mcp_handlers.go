package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/commentiq/core"
	"github.com/huangsam/commentiq/core/algo"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// analysesOutput is the JSON shape of every analysis tool.
type analysesOutput struct {
	Analyses []schema.EnrichedAnalysis `json:"analyses"`
	Failures []schema.BatchFailure     `json:"failures"`
}

func (h *toolHandler) handleAnalyzeText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	text := request.GetString("text", "")
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	output, err := core.GetAnalyzeResults(h.historyCtx(ctx, request), cfg, h.mgr, []string{text}, schema.UserSource, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(h.enrich(cfg, output))
}

func (h *toolHandler) handleAnalyzeBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	texts, err := core.ReadTextLines(strings.NewReader(request.GetString("texts", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid texts: %v", err)), nil
	}
	if len(texts) == 0 {
		return mcp.NewToolResultError("texts must contain at least one non-blank line"), nil
	}

	output, err := core.GetAnalyzeResults(h.historyCtx(ctx, request), cfg, h.mgr, texts, schema.UserSource, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch analysis failed: %v", err)), nil
	}
	return jsonResult(h.enrich(cfg, output))
}

func (h *toolHandler) handleFetchComments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	apiURL := request.GetString("url", "")
	if apiURL == "" {
		return mcp.NewToolResultError("url is required"), nil
	}
	cfg.StripMarkdown = request.GetBool("strip_markdown", cfg.StripMarkdown)

	results, err := core.GetFetchResults(h.historyCtx(ctx, request), cfg, h.mgr, []string{apiURL})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetch failed: %v", err)), nil
	}
	return jsonResult(h.enrich(cfg, results[0].BatchOutput))
}

func (h *toolHandler) handleCorpusWords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyFilter(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	words, _, err := core.GetCorpusWordsResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus analysis failed: %v", err)), nil
	}
	return jsonResult(words)
}

func (h *toolHandler) handleCorpusKeywords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyFilter(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if d := request.GetString("dominant", ""); d != "" {
		label, ok := schema.ParseSentimentLabel(d)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid dominant sentiment '%s'", d)), nil
		}
		cfg.Dominant = label
	}
	cfg.Influential = request.GetBool("influential", false)
	if cfg.Dominant != "" && cfg.Influential {
		return mcp.NewToolResultError("dominant and influential cannot be used together"), nil
	}

	keywords, _, err := core.GetCorpusKeywordsResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("corpus analysis failed: %v", err)), nil
	}
	return jsonResult(keywords)
}

func (h *toolHandler) handleListHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyFilter(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := core.GetHistoryResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history lookup failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichAnalyses(records, nil))
}

func (h *toolHandler) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyFilter(cfg, request); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := core.GetReportResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// historyCtx keeps tool calls out of history unless the caller asks to save.
func (h *toolHandler) historyCtx(ctx context.Context, request mcp.CallToolRequest) context.Context {
	if request.GetBool("save", false) {
		return ctx
	}
	return core.WithSkipHistory(ctx)
}

func (h *toolHandler) enrich(cfg *contract.Config, output schema.BatchOutput) analysesOutput {
	var crosscheck func(string) float64
	if cfg.Crosscheck {
		crosscheck = algo.VaderCompound
	}
	failures := output.Failures
	if failures == nil {
		failures = []schema.BatchFailure{}
	}
	return analysesOutput{
		Analyses: schema.EnrichAnalyses(output.Analyses, crosscheck),
		Failures: failures,
	}
}

// applyFilter narrows cfg.Filter with the shared history arguments.
func applyFilter(cfg *contract.Config, request mcp.CallToolRequest) error {
	filter := schema.HistoryFilter{
		Search: request.GetString("search", ""),
		APIURL: request.GetString("api_url", ""),
		Limit:  cfg.Limit,
	}
	if l := request.GetInt("limit", 0); l > 0 {
		filter.Limit = min(l, contract.MaxResultLimit)
		cfg.Limit = filter.Limit
	}

	label, ok := schema.ParseSentimentLabel(request.GetString("sentiment", ""))
	if !ok {
		return fmt.Errorf("invalid sentiment '%s'", request.GetString("sentiment", ""))
	}
	filter.Label = label

	source, ok := schema.ParseSource(request.GetString("source", ""))
	if !ok {
		return fmt.Errorf("invalid source '%s'", request.GetString("source", ""))
	}
	filter.Source = source

	cfg.Filter = filter
	return nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
