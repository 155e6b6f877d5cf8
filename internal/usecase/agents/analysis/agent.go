package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/prompts"
)

const maxIterations = 3

// Agent extracts trends, risks, opportunities, and business impact from
// research findings. The model must answer in a fixed JSON shape; a malformed
// answer triggers a correction retry within the iteration cap.
type Agent struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func New(reasoningLLM output.LLMPort, logger output.LoggerPort) *Agent {
	return &Agent{
		llm:    reasoningLLM,
		logger: logger,
	}
}

func (a *Agent) Type() entity.AgentType {
	return entity.AgentTypeAnalysis
}

func (a *Agent) Execute(ctx context.Context, findings *entity.ResearchFindings) (*entity.AnalysisReport, error) {
	a.logger.Info("Analysis agent executing", "query", findings.Query)

	prompt, err := prompts.GenerateAnalysisPrompt(prompts.AnalysisPromptData{
		Findings: findings.Findings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis prompt: %w", err)
	}

	messages := []entity.Message{{Role: entity.RoleUser, Content: prompt}}

	for iter := 1; iter <= maxIterations; iter++ {
		a.logger.Debug("Analysis agent iteration", "iteration", iter)

		resp, err := a.llm.Chat(ctx, output.ChatRequest{Messages: messages})
		if err != nil {
			return nil, fmt.Errorf("analysis llm request failed: %w", err)
		}

		report, err := parseAnalysisResponse(resp.Message.Content)
		if err == nil {
			a.logger.Info("Analysis agent completed", "iterations", iter, "trends", len(report.KeyTrends))
			return report, nil
		}

		parseErr := &entity.AgentParsingError{Agent: entity.AgentTypeAnalysis, Err: err}
		a.logger.Warn("Analysis output unparseable, retrying with correction", "iteration", iter, "error", parseErr)

		messages = append(messages,
			resp.Message,
			entity.Message{
				Role: entity.RoleUser,
				Content: fmt.Sprintf(
					"Your previous response could not be parsed (%v). "+
						"Respond again with only the JSON object in the required format, no surrounding text.",
					err,
				),
			},
		)
	}

	return nil, &entity.AgentIncompleteError{Agent: entity.AgentTypeAnalysis, Iterations: maxIterations}
}

func parseAnalysisResponse(content string) (*entity.AnalysisReport, error) {
	jsonStr, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var report entity.AnalysisReport
	if err := json.Unmarshal([]byte(jsonStr), &report); err != nil {
		return nil, fmt.Errorf("invalid analysis JSON: %w", err)
	}

	if len(report.KeyTrends) == 0 {
		return nil, fmt.Errorf("analysis JSON has no key_trends")
	}

	return &report, nil
}

func extractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return content[start : end+1], nil
}
