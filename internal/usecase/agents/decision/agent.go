package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/prompts"
	"research-agent/internal/usecase/tools"
)

// maxIterations is deliberately tight: it exists to force exactly one decision
// tool invocation plus at most one restructuring pass over its output.
const maxIterations = 2

// Agent turns an analysis report into actionable recommendations via the
// decision tool. The tool must run exactly once per execution; zero
// invocations is a contract violation.
type Agent struct {
	llm    output.LLMPort
	tool   *tools.DecisionTool
	logger output.LoggerPort
}

func New(reasoningLLM output.LLMPort, tool *tools.DecisionTool, logger output.LoggerPort) *Agent {
	return &Agent{
		llm:    reasoningLLM,
		tool:   tool,
		logger: logger,
	}
}

func (a *Agent) Type() entity.AgentType {
	return entity.AgentTypeDecision
}

func (a *Agent) Execute(ctx context.Context, report *entity.AnalysisReport) (*entity.DecisionOutput, error) {
	a.logger.Info("Decision agent executing")

	analysisJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal analysis report: %w", err)
	}

	before := a.tool.Invocations()

	args, _ := json.Marshal(map[string]string{"analysis": string(analysisJSON)})
	toolOutput, err := a.tool.Execute(ctx, string(args))
	if err != nil {
		return nil, err
	}

	decisions, parseErr := parseDecisionResponse(toolOutput)
	if parseErr != nil {
		a.logger.Warn("Decision tool output unparseable, restructuring with llm",
			"error", &entity.AgentParsingError{Agent: entity.AgentTypeDecision, Err: parseErr})

		decisions, err = a.restructure(ctx, string(analysisJSON), toolOutput)
		if err != nil {
			return nil, err
		}
	}

	if invoked := a.tool.Invocations() - before; invoked != 1 {
		return nil, fmt.Errorf("decision tool invoked %d times, contract requires exactly one", invoked)
	}

	a.logger.Info("Decision agent completed", "recommendations", len(decisions.Recommendations))
	return decisions, nil
}

// restructure is the second and final iteration: one reasoning-model pass that
// reshapes the raw tool output into the required JSON.
func (a *Agent) restructure(ctx context.Context, analysisJSON, toolOutput string) (*entity.DecisionOutput, error) {
	prompt, err := prompts.GenerateRestructurePrompt(prompts.RestructurePromptData{
		Analysis:       analysisJSON,
		DecisionOutput: toolOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate restructure prompt: %w", err)
	}

	resp, err := a.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("decision restructure llm request failed: %w", err)
	}

	decisions, parseErr := parseDecisionResponse(resp.Message.Content)
	if parseErr != nil {
		return nil, &entity.AgentIncompleteError{Agent: entity.AgentTypeDecision, Iterations: maxIterations}
	}

	return decisions, nil
}

func parseDecisionResponse(content string) (*entity.DecisionOutput, error) {
	jsonStr, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var decisions entity.DecisionOutput
	if err := json.Unmarshal([]byte(jsonStr), &decisions); err != nil {
		return nil, fmt.Errorf("invalid decision JSON: %w", err)
	}

	if len(decisions.Recommendations) == 0 {
		return nil, fmt.Errorf("decision JSON has no recommendations")
	}

	return &decisions, nil
}

func extractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return content[start : end+1], nil
}
