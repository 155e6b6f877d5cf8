package research

import (
	"context"
	"errors"
	"strings"
	"testing"

	"research-agent/internal/application/port/output"
	"research-agent/internal/application/service"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/tracing"
	"research-agent/internal/usecase/tools"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
func (l nopLogger) WithField(string, any) output.LoggerPort { return l }
func (nopLogger) Close() error { return nil }

type mockLLM struct {
	requests  []output.ChatRequest
	responses []entity.Message
	err       error
}

func (m *mockLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	idx := len(m.requests) - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return &output.ChatResponse{Message: m.responses[idx]}, nil
}

func (m *mockLLM) calls() int { return len(m.requests) }

func assistant(content string) entity.Message {
	return entity.Message{Role: entity.RoleAssistant, Content: content}
}

func toolCall(id string, name entity.ToolName, args string) entity.Message {
	return entity.Message{
		Role:      entity.RoleAssistant,
		ToolCalls: []entity.ToolCall{{ID: id, Name: string(name), Arguments: args}},
	}
}

type mockSearcher struct {
	calls  int
	result string
	err    error
}

func (m *mockSearcher) Search(ctx context.Context, query string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.result, nil
}

func newAgentUnderTest(searcher *mockSearcher, fastLLM, reasoningLLM *mockLLM) *Agent {
	tracer := tracing.NewNoopTracer()
	searchTool := tools.NewSearchTool(searcher, tracer, nopLogger{})
	summarizeTool := tools.NewSummarizationTool(fastLLM, tracer, nopLogger{})
	decisionTool := tools.NewDecisionTool(&mockLLM{}, tracer, nopLogger{})

	registry := service.NewToolRegistry()
	registry.Register(searchTool)
	registry.Register(summarizeTool)
	registry.Register(decisionTool)

	return New(reasoningLLM, searchTool, summarizeTool, registry, nopLogger{})
}

func TestExecute_ShortResultsSkipSummarization(t *testing.T) {
	searcher := &mockSearcher{result: "A short but sufficient set of search results about AI regulation and startup funding trends."}
	fastLLM := &mockLLM{responses: []entity.Message{assistant("should not run")}}
	reasoningLLM := &mockLLM{responses: []entity.Message{assistant("Structured research findings.")}}

	agent := newAgentUnderTest(searcher, fastLLM, reasoningLLM)

	findings, err := agent.Execute(context.Background(), "Impact of AI regulation on startup funding")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if fastLLM.calls() != 0 {
		t.Errorf("Expected summarization model untouched for short content, got %d calls", fastLLM.calls())
	}
	if reasoningLLM.calls() != 1 {
		t.Errorf("Expected one structuring call, got %d", reasoningLLM.calls())
	}
	if findings.Findings != "Structured research findings." {
		t.Errorf("Unexpected findings: %q", findings.Findings)
	}
	if findings.RawSearchResults != searcher.result {
		t.Error("Expected raw search results preserved")
	}
	if findings.Query != "Impact of AI regulation on startup funding" {
		t.Errorf("Expected query preserved, got %q", findings.Query)
	}
}

func TestExecute_LongResultsAreSummarized(t *testing.T) {
	searcher := &mockSearcher{result: strings.TrimSpace(strings.Repeat("finding ", 600))}
	fastLLM := &mockLLM{responses: []entity.Message{assistant("condensed findings")}}
	reasoningLLM := &mockLLM{responses: []entity.Message{assistant("Structured research findings.")}}

	agent := newAgentUnderTest(searcher, fastLLM, reasoningLLM)

	if _, err := agent.Execute(context.Background(), "enterprise AI adoption"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if fastLLM.calls() != 1 {
		t.Errorf("Expected one summarization call for long content, got %d", fastLLM.calls())
	}

	prompt := reasoningLLM.requests[0].Messages[0].Content
	if !strings.Contains(prompt, "condensed findings") {
		t.Error("Expected structuring prompt built from the condensed summary")
	}
	if !strings.Contains(prompt, "enterprise AI adoption") {
		t.Error("Expected structuring prompt to contain the query")
	}
}

func TestExecute_StructuringCallOffersResearchToolsOnly(t *testing.T) {
	searcher := &mockSearcher{result: "Decent sized search results about AI trends and enterprise adoption patterns in 2024."}
	reasoningLLM := &mockLLM{responses: []entity.Message{assistant("done")}}

	agent := newAgentUnderTest(searcher, &mockLLM{}, reasoningLLM)

	if _, err := agent.Execute(context.Background(), "q"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	offered := map[entity.ToolName]bool{}
	for _, def := range reasoningLLM.requests[0].Tools {
		offered[def.Name] = true
	}

	if !offered[entity.ToolSearch] || !offered[entity.ToolSummarization] {
		t.Errorf("Expected search and summarization tools offered, got %v", offered)
	}
	if offered[entity.ToolDecision] {
		t.Error("Decision tool must not be offered during research")
	}
}

func TestExecute_ModelToolCallIsDispatched(t *testing.T) {
	searcher := &mockSearcher{result: "Decent sized search results about AI trends and enterprise adoption patterns in 2024."}
	reasoningLLM := &mockLLM{responses: []entity.Message{
		toolCall("call-1", entity.ToolSearch, `{"query":"open source model licensing"}`),
		assistant("Structured findings with follow-up."),
	}}

	agent := newAgentUnderTest(searcher, &mockLLM{}, reasoningLLM)

	findings, err := agent.Execute(context.Background(), "enterprise AI adoption")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if searcher.calls != 2 {
		t.Errorf("Expected follow-up search dispatched to the backend, got %d calls", searcher.calls)
	}
	if findings.Findings != "Structured findings with follow-up." {
		t.Errorf("Unexpected findings: %q", findings.Findings)
	}

	second := reasoningLLM.requests[1].Messages
	last := second[len(second)-1]
	if last.Role != entity.RoleTool || last.ToolCallID != "call-1" || last.Name != string(entity.ToolSearch) {
		t.Errorf("Expected tool observation message, got %+v", last)
	}
	if !strings.Contains(last.Content, searcher.result) {
		t.Error("Expected observation to carry the search result")
	}
}

func TestExecute_DuplicateFollowUpSearchIsSuppressed(t *testing.T) {
	searcher := &mockSearcher{result: strings.TrimSpace(strings.Repeat("Detailed findings on enterprise AI adoption across industries. ", 4))}
	reasoningLLM := &mockLLM{responses: []entity.Message{
		toolCall("call-1", entity.ToolSearch, `{"query":"enterprise AI adoption"}`),
		assistant("done"),
	}}

	agent := newAgentUnderTest(searcher, &mockLLM{}, reasoningLLM)

	if _, err := agent.Execute(context.Background(), "enterprise AI adoption"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if searcher.calls != 1 {
		t.Errorf("Expected the duplicate follow-up search answered from history, got %d backend calls", searcher.calls)
	}

	second := reasoningLLM.requests[1].Messages
	last := second[len(second)-1]
	if !strings.Contains(last.Content, "near-duplicate") {
		t.Errorf("Expected duplicate note in observation, got %q", last.Content)
	}
}

func TestExecute_UnknownToolCallReportedToModel(t *testing.T) {
	searcher := &mockSearcher{result: "Decent sized search results about AI trends and enterprise adoption patterns in 2024."}
	reasoningLLM := &mockLLM{responses: []entity.Message{
		toolCall("call-1", entity.ToolDecision, `{"analysis":"x"}`),
		assistant("done"),
	}}

	agent := newAgentUnderTest(searcher, &mockLLM{}, reasoningLLM)

	if _, err := agent.Execute(context.Background(), "q"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	second := reasoningLLM.requests[1].Messages
	last := second[len(second)-1]
	if !strings.Contains(last.Content, "unknown tool") {
		t.Errorf("Expected error observation for disallowed tool, got %q", last.Content)
	}
}

func TestExecute_EndlessToolCallsHitIterationCap(t *testing.T) {
	searcher := &mockSearcher{result: "Decent sized search results about AI trends and enterprise adoption patterns in 2024."}
	reasoningLLM := &mockLLM{responses: []entity.Message{
		toolCall("call-1", entity.ToolSearch, `{"query":"first follow-up on AI"}`),
	}}

	agent := newAgentUnderTest(searcher, &mockLLM{}, reasoningLLM)

	_, err := agent.Execute(context.Background(), "q")

	var incomplete *entity.AgentIncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Expected AgentIncompleteError, got %v", err)
	}
	if incomplete.Iterations != maxIterations {
		t.Errorf("Expected cap of %d iterations reported, got %d", maxIterations, incomplete.Iterations)
	}
}

func TestExecute_SearchRetriedOnceThenSurfaced(t *testing.T) {
	searcher := &mockSearcher{err: errors.New("connection refused")}
	agent := newAgentUnderTest(searcher, &mockLLM{}, &mockLLM{})

	_, err := agent.Execute(context.Background(), "anything")
	if err == nil {
		t.Fatal("Expected error after retries exhausted")
	}

	if searcher.calls != 2 {
		t.Errorf("Expected one retry (2 backend calls), got %d", searcher.calls)
	}

	var toolErr *entity.ToolInvocationError
	if !errors.As(err, &toolErr) {
		t.Fatalf("Expected ToolInvocationError, got %T", err)
	}
}

func TestExecute_StructuringFailureSurfaced(t *testing.T) {
	searcher := &mockSearcher{result: "Decent sized search results about AI trends and enterprise adoption patterns in 2024."}
	reasoningLLM := &mockLLM{err: errors.New("model timeout")}

	agent := newAgentUnderTest(searcher, &mockLLM{}, reasoningLLM)

	if _, err := agent.Execute(context.Background(), "q"); err == nil {
		t.Fatal("Expected structuring failure to surface")
	}
}

func TestExecute_EmptyStructuredOutputIsIncomplete(t *testing.T) {
	searcher := &mockSearcher{result: "Decent sized search results about AI trends and enterprise adoption patterns in 2024."}
	reasoningLLM := &mockLLM{responses: []entity.Message{assistant("   ")}}

	agent := newAgentUnderTest(searcher, &mockLLM{}, reasoningLLM)

	_, err := agent.Execute(context.Background(), "q")

	var incomplete *entity.AgentIncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Expected AgentIncompleteError, got %v", err)
	}
	if incomplete.Agent != entity.AgentTypeResearch {
		t.Errorf("Expected research agent in error, got %s", incomplete.Agent)
	}
}
