package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

const (
	// Results shorter than this are treated as insufficient: they never
	// satisfy a follow-up query.
	minSufficientResultLen = 100

	// Token-overlap ratio above which two queries count as near-duplicates.
	duplicateSimilarity = 0.8

	maxResultLen = 8000
)

var _ output.ToolPort = (*SearchTool)(nil)

// SearchTool wraps the search backend with best-effort duplicate suppression:
// a near-duplicate of an earlier query whose result was sufficient is answered
// from the earlier result without a second external call. Suppression is a
// heuristic, not a guarantee.
type SearchTool struct {
	search  output.SearchPort
	tracer  output.TracerPort
	logger  output.LoggerPort
	history []searchRecord
}

type searchRecord struct {
	query  string
	result string
}

func NewSearchTool(search output.SearchPort, tracer output.TracerPort, logger output.LoggerPort) *SearchTool {
	return &SearchTool{
		search: search,
		tracer: tracer,
		logger: logger,
	}
}

func (t *SearchTool) Name() entity.ToolName {
	return entity.ToolSearch
}

func (t *SearchTool) Description() string {
	return "Search for current AI news, trends, and information. " +
		"Input should be a specific search query string. " +
		"Returns relevant search results as formatted text."
}

func (t *SearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query string.",
			},
		},
		"required": []string{"query"},
	}
}

type searchInput struct {
	Query string `json:"query"`
}

func (t *SearchTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args searchInput
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query parameter is required")
	}

	if prev, ok := t.findDuplicate(args.Query); ok {
		t.logger.Info("Near-duplicate search suppressed", "query", args.Query, "previous", prev.query)
		return "Note: near-duplicate of an earlier search, returning prior results.\n\n" + prev.result, nil
	}

	ctx, span := t.tracer.StartSpan(ctx, string(entity.ToolSearch), "tool", map[string]any{"query": args.Query})

	result, err := t.search.Search(ctx, args.Query)
	if err != nil {
		span.End(nil, err)
		return "", &entity.ToolInvocationError{Tool: entity.ToolSearch, Err: err}
	}

	if len(result) > maxResultLen {
		result = truncate(result, maxResultLen) + "\n... (truncated)"
	}

	span.End(map[string]any{"result_len": len(result)}, nil)

	if len(result) < minSufficientResultLen {
		t.logger.Warn("Search result below sufficiency threshold", "query", args.Query, "resultLen", len(result))
	}

	t.history = append(t.history, searchRecord{query: args.Query, result: result})
	return result, nil
}

// Reset clears the per-run query history.
func (t *SearchTool) Reset() {
	t.history = nil
}

func (t *SearchTool) findDuplicate(query string) (searchRecord, bool) {
	for _, rec := range t.history {
		if len(rec.result) < minSufficientResultLen {
			continue
		}
		if querySimilarity(rec.query, query) >= duplicateSimilarity {
			return rec, true
		}
	}
	return searchRecord{}, false
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// querySimilarity is the Jaccard index over lowercased tokens.
func querySimilarity(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range tokensA {
		if tokensB[tok] {
			intersection++
		}
	}

	union := len(tokensA) + len(tokensB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[strings.Trim(tok, ".,!?\"'()")] = true
	}
	delete(set, "")
	return set
}
