package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/prompts"
)

var _ output.ToolPort = (*DecisionTool)(nil)

// DecisionTool turns an analysis report into structured strategic
// recommendations using the reasoning model. The decision agent invokes it
// exactly once per run.
type DecisionTool struct {
	llm         output.LLMPort
	tracer      output.TracerPort
	logger      output.LoggerPort
	invocations int
}

func NewDecisionTool(reasoningLLM output.LLMPort, tracer output.TracerPort, logger output.LoggerPort) *DecisionTool {
	return &DecisionTool{
		llm:    reasoningLLM,
		tracer: tracer,
		logger: logger,
	}
}

func (t *DecisionTool) Name() entity.ToolName {
	return entity.ToolDecision
}

func (t *DecisionTool) Description() string {
	return "Generate strategic business recommendations based on analysis data. " +
		"Input should be analysis results as a JSON string. " +
		"Returns structured recommendations with rationale and priority."
}

func (t *DecisionTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"analysis": map[string]interface{}{
				"type":        "string",
				"description": "Analysis results as a JSON string.",
			},
		},
		"required": []string{"analysis"},
	}
}

type decideInput struct {
	Analysis string `json:"analysis"`
}

func (t *DecisionTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args decideInput
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}

	t.invocations++

	prompt, err := prompts.GenerateDecisionPrompt(prompts.DecisionPromptData{Analysis: args.Analysis})
	if err != nil {
		return "", fmt.Errorf("failed to generate decision prompt: %w", err)
	}

	ctx, span := t.tracer.StartSpan(ctx, string(entity.ToolDecision), "tool", map[string]any{"analysis_len": len(args.Analysis)})

	resp, err := t.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: prompt}},
	})
	if err != nil {
		span.End(nil, err)
		t.logger.Warn("Decision model call failed, using fallback recommendations", "error", err)
		return fallbackDecisionJSON(), nil
	}

	out := strings.TrimSpace(resp.Message.Content)
	span.End(map[string]any{"output_len": len(out)}, nil)

	return out, nil
}

// Invocations reports how many times the tool has run since the last Reset.
func (t *DecisionTool) Invocations() int {
	return t.invocations
}

// Reset clears the per-run invocation counter.
func (t *DecisionTool) Reset() {
	t.invocations = 0
}

func fallbackDecisionJSON() string {
	fallback := entity.DecisionOutput{
		Recommendations: []entity.Recommendation{
			{
				Action:    "Monitor AI technology developments closely",
				Rationale: "Rapid pace of AI advancement requires continuous awareness",
				Priority:  entity.PriorityHigh,
				Timeline:  entity.TimelineShort,
			},
		},
		KeyConsiderations: []string{"Technology adoption costs", "Competitive landscape"},
		RiskMitigation:    []string{"Gradual implementation", "Staff training programs"},
	}

	data, err := json.MarshalIndent(fallback, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
