package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/prompts"
	"research-agent/internal/usecase/tools"
)

const maxIterations = 5

// Agent gathers factual information for a query: one search, a conditional
// summarization pass, then a reasoning-model loop that structures the findings
// and may call the research tools for follow-ups. Every model round and tool
// call counts against the iteration cap; a failed tool call in the pre-pass
// gets one bounded retry.
type Agent struct {
	llm       output.LLMPort
	search    *tools.SearchTool
	summarize *tools.SummarizationTool
	tools     output.ToolRegistry
	logger    output.LoggerPort
}

func New(
	reasoningLLM output.LLMPort,
	search *tools.SearchTool,
	summarize *tools.SummarizationTool,
	registry output.ToolRegistry,
	logger output.LoggerPort,
) *Agent {
	return &Agent{
		llm:       reasoningLLM,
		search:    search,
		summarize: summarize,
		tools:     registry,
		logger:    logger,
	}
}

func (a *Agent) Type() entity.AgentType {
	return entity.AgentTypeResearch
}

func (a *Agent) Execute(ctx context.Context, query string) (*entity.ResearchFindings, error) {
	a.logger.Info("Research agent executing", "query", query)

	iterations := 0

	searchResults, err := a.runTool(ctx, &iterations, a.search, searchArgs(query))
	if err != nil {
		return nil, err
	}

	findings, err := a.runTool(ctx, &iterations, a.summarize, summarizeArgs(searchResults))
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.GenerateResearchPrompt(prompts.ResearchPromptData{
		Query:    query,
		Findings: findings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate research prompt: %w", err)
	}

	structured, err := a.structure(ctx, &iterations, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Research agent completed", "iterations", iterations, "findingsLen", len(structured))

	return &entity.ResearchFindings{
		Query:            query,
		Findings:         structured,
		RawSearchResults: searchResults,
	}, nil
}

// structure runs the reasoning model over the gathered findings. The model is
// handed the research tools and may call them for follow-up searches or extra
// condensation before it settles on a final answer.
func (a *Agent) structure(ctx context.Context, iterations *int, prompt string) (string, error) {
	messages := []entity.Message{{Role: entity.RoleUser, Content: prompt}}
	toolDefs := a.filterTools()

	for {
		*iterations++
		if *iterations > maxIterations {
			return "", &entity.AgentIncompleteError{Agent: entity.AgentTypeResearch, Iterations: *iterations - 1}
		}

		resp, err := a.llm.Chat(ctx, output.ChatRequest{
			Messages: messages,
			Tools:    toolDefs,
		})
		if err != nil {
			return "", fmt.Errorf("research llm request failed: %w", err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			structured := strings.TrimSpace(resp.Message.Content)
			if structured == "" {
				return "", &entity.AgentIncompleteError{Agent: entity.AgentTypeResearch, Iterations: *iterations}
			}
			return structured, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    a.executeToolCall(ctx, tc),
			})
		}
	}
}

func (a *Agent) executeToolCall(ctx context.Context, tc entity.ToolCall) string {
	tool, ok := a.tools.Get(entity.ToolName(tc.Name))
	if !ok || !a.allowed(entity.ToolName(tc.Name)) {
		a.logger.Warn("Unknown or disallowed tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
	}

	a.logger.Info("Executing tool", "name", tc.Name, "args", tc.Arguments)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		a.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		return "Error: " + err.Error()
	}
	return result
}

// filterTools exposes only the research tools: the decision tool belongs to a
// later phase and must not be callable here.
func (a *Agent) filterTools() []entity.ToolDefinition {
	var defs []entity.ToolDefinition
	for _, def := range a.tools.Definitions() {
		if a.allowed(def.Name) {
			defs = append(defs, def)
		}
	}
	return defs
}

func (a *Agent) allowed(name entity.ToolName) bool {
	return name == entity.ToolSearch || name == entity.ToolSummarization
}

// runTool executes a tool, retrying once when the external call itself failed.
func (a *Agent) runTool(ctx context.Context, iterations *int, tool output.ToolPort, arguments string) (string, error) {
	for attempt := 0; attempt < 2; attempt++ {
		*iterations++
		if *iterations > maxIterations {
			return "", &entity.AgentIncompleteError{Agent: entity.AgentTypeResearch, Iterations: *iterations - 1}
		}

		result, err := tool.Execute(ctx, arguments)
		if err == nil {
			return result, nil
		}

		var toolErr *entity.ToolInvocationError
		if attempt == 0 && errors.As(err, &toolErr) {
			a.logger.Warn("Tool call failed, retrying once", "tool", tool.Name(), "error", err)
			continue
		}
		return "", err
	}
	return "", &entity.AgentIncompleteError{Agent: entity.AgentTypeResearch, Iterations: *iterations}
}

func searchArgs(query string) string {
	data, _ := json.Marshal(map[string]string{"query": query})
	return string(data)
}

func summarizeArgs(text string) string {
	data, _ := json.Marshal(map[string]string{"text": text})
	return string(data)
}
