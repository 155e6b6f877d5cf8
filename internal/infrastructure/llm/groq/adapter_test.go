package groq

import (
	"testing"

	"research-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

func TestConvertResponseMessage_WithContent(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "Structured findings.",
	}

	result := convertResponseMessage(msg)

	if result.Role != entity.RoleAssistant {
		t.Errorf("Expected assistant role, got %s", result.Role)
	}
	if result.Content != "Structured findings." {
		t.Errorf("Unexpected content: %q", result.Content)
	}
	if len(result.ToolCalls) != 0 {
		t.Errorf("Expected no tool calls, got %d", len(result.ToolCalls))
	}
}

func TestConvertResponseMessage_WithToolCalls(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Role: "assistant",
		ToolCalls: []openai.ToolCall{
			{
				ID:   "call_123",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      string(entity.ToolSearch),
					Arguments: `{"query":"AI adoption"}`,
				},
			},
		},
	}

	result := convertResponseMessage(msg)

	if len(result.ToolCalls) != 1 {
		t.Fatalf("Expected 1 tool call, got %d", len(result.ToolCalls))
	}
	tc := result.ToolCalls[0]
	if tc.ID != "call_123" || tc.Name != string(entity.ToolSearch) {
		t.Errorf("Unexpected tool call: %+v", tc)
	}
	if tc.Arguments != `{"query":"AI adoption"}` {
		t.Errorf("Unexpected arguments: %q", tc.Arguments)
	}
}

func TestConvertMessages_ToolExchange(t *testing.T) {
	messages := []entity.Message{
		{Role: entity.RoleUser, Content: "Structure these findings"},
		{
			Role: entity.RoleAssistant,
			ToolCalls: []entity.ToolCall{
				{ID: "call_1", Name: string(entity.ToolSearch), Arguments: `{"query":"q"}`},
			},
		},
		{
			Role:       entity.RoleTool,
			ToolCallID: "call_1",
			Name:       string(entity.ToolSearch),
			Content:    "search observation",
		},
	}

	result := convertMessages(messages)

	if len(result) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(result))
	}

	if result[0].Role != "user" || result[0].Content != "Structure these findings" {
		t.Errorf("Unexpected user message: %+v", result[0])
	}

	if len(result[1].ToolCalls) != 1 {
		t.Fatalf("Expected assistant tool call preserved, got %+v", result[1])
	}
	if result[1].ToolCalls[0].ID != "call_1" || result[1].ToolCalls[0].Function.Name != string(entity.ToolSearch) {
		t.Errorf("Unexpected converted tool call: %+v", result[1].ToolCalls[0])
	}
	if result[1].ToolCalls[0].Type != openai.ToolTypeFunction {
		t.Errorf("Expected function tool call type, got %s", result[1].ToolCalls[0].Type)
	}

	if result[2].Role != "tool" || result[2].ToolCallID != "call_1" || result[2].Name != string(entity.ToolSearch) {
		t.Errorf("Unexpected tool message: %+v", result[2])
	}
	if result[2].Content != "search observation" {
		t.Errorf("Unexpected tool content: %q", result[2].Content)
	}
}

func TestConvertTools(t *testing.T) {
	defs := []entity.ToolDefinition{
		{
			Name:        entity.ToolSearch,
			Description: "search",
			Parameters: map[string]interface{}{
				"type": "object",
			},
		},
		{
			Name:        entity.ToolSummarization,
			Description: "summarize",
		},
	}

	result := convertTools(defs)

	if len(result) != 2 {
		t.Fatalf("Expected 2 tools, got %d", len(result))
	}
	if result[0].Type != openai.ToolTypeFunction {
		t.Errorf("Expected function tool type, got %s", result[0].Type)
	}
	if result[0].Function.Name != string(entity.ToolSearch) || result[0].Function.Description != "search" {
		t.Errorf("Unexpected tool definition: %+v", result[0].Function)
	}
	if result[1].Function.Name != string(entity.ToolSummarization) {
		t.Errorf("Unexpected second tool: %+v", result[1].Function)
	}
}
