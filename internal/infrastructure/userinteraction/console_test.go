package userinteraction

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"research-agent/internal/domain/entity"
)

func TestShowReport_ContainsFixedSections(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader(""), &out)

	console.ShowReport(context.Background(), &entity.WorkflowResult{
		Query:   "q",
		Summary: "the run summary",
		KeyTrends: []string{
			"Trend 1: LLM progress",
		},
		BusinessImpact: entity.BusinessImpact{
			ShortTerm:  "tool integration",
			MediumTerm: "process change",
			LongTerm:   "industry shift",
		},
		RecommendedActions: []entity.Recommendation{
			{Action: "monitor developments", Rationale: "stay ahead", Priority: entity.PriorityHigh, Timeline: entity.TimelineShort},
			{Action: "run a pilot", Priority: entity.PriorityMedium, Timeline: entity.TimelineMedium},
		},
	})

	report := out.String()
	for _, header := range []string{"SUMMARY", "KEY TRENDS", "BUSINESS IMPACT", "RECOMMENDED ACTIONS"} {
		if !strings.Contains(report, header) {
			t.Errorf("Expected section header %q in report", header)
		}
	}

	if !strings.Contains(report, "the run summary") {
		t.Error("Expected summary body in report")
	}
	if !strings.Contains(report, "1. Trend 1: LLM progress") {
		t.Error("Expected numbered trend in report")
	}
	if !strings.Contains(report, "• Short Term: tool integration") {
		t.Error("Expected business impact line in report")
	}
	if !strings.Contains(report, "1. monitor developments") {
		t.Error("Expected first recommendation in report")
	}
	if !strings.Contains(report, "Priority: High") || !strings.Contains(report, "Rationale: stay ahead") {
		t.Error("Expected recommendation details in report")
	}

	if strings.Index(report, "2. run a pilot") < strings.Index(report, "1. monitor developments") {
		t.Error("Expected recommendation order preserved")
	}
}

func TestShowReport_EmptySections(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader(""), &out)

	console.ShowReport(context.Background(), &entity.WorkflowResult{Query: "q"})

	report := out.String()
	if !strings.Contains(report, "No summary available") {
		t.Error("Expected placeholder for missing summary")
	}
	if !strings.Contains(report, "No specific trends identified") {
		t.Error("Expected placeholder for missing trends")
	}
	if !strings.Contains(report, "No specific actions recommended") {
		t.Error("Expected placeholder for missing actions")
	}
}

func TestSelectQuery_OwnQuery(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader("1\nmy research question\n"), &out)

	query, ok, err := console.SelectQuery(context.Background())
	if err != nil {
		t.Fatalf("SelectQuery failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected a query, got exit")
	}
	if query != "my research question" {
		t.Errorf("Expected entered query, got %q", query)
	}
}

func TestSelectQuery_ExampleSelection(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader("2\n3\n"), &out)

	query, ok, err := console.SelectQuery(context.Background())
	if err != nil {
		t.Fatalf("SelectQuery failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected a query, got exit")
	}
	if query != exampleQueries[2] {
		t.Errorf("Expected third example query, got %q", query)
	}

	if !strings.Contains(out.String(), exampleQueries[0]) {
		t.Error("Expected example list printed")
	}
}

func TestSelectQuery_Exit(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader("3\n"), &out)

	_, ok, err := console.SelectQuery(context.Background())
	if err != nil {
		t.Fatalf("SelectQuery failed: %v", err)
	}
	if ok {
		t.Fatal("Expected exit signal")
	}
}

func TestSelectQuery_InvalidChoiceThenValid(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader("7\n1\nquery\n"), &out)

	query, ok, err := console.SelectQuery(context.Background())
	if err != nil || !ok {
		t.Fatalf("SelectQuery failed: %v", err)
	}
	if query != "query" {
		t.Errorf("Expected recovery after invalid choice, got %q", query)
	}
	if !strings.Contains(out.String(), "Please enter 1, 2, or 3") {
		t.Error("Expected guidance after invalid choice")
	}
}

func TestShowPhase(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader(""), &out)

	console.ShowPhase(context.Background(), entity.PhaseResearching)
	console.ShowPhase(context.Background(), entity.PhaseAnalyzing)

	text := out.String()
	research := strings.Index(text, string(entity.PhaseResearching))
	analyzing := strings.Index(text, string(entity.PhaseAnalyzing))
	if research == -1 || analyzing == -1 {
		t.Fatalf("Expected both phases announced, got %q", text)
	}
	if research > analyzing {
		t.Error("Expected phases announced in call order")
	}
}

func TestAskRunAgain(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleWithStreams(strings.NewReader("maybe\nY\n"), &out)

	again, err := console.AskRunAgain(context.Background())
	if err != nil {
		t.Fatalf("AskRunAgain failed: %v", err)
	}
	if !again {
		t.Error("Expected yes after retry prompt")
	}

	console = NewConsoleWithStreams(strings.NewReader("no\n"), &out)
	again, err = console.AskRunAgain(context.Background())
	if err != nil {
		t.Fatalf("AskRunAgain failed: %v", err)
	}
	if again {
		t.Error("Expected no")
	}
}
