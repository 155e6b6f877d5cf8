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

// SummarizeThresholdWords is the word count above which content gets condensed.
// At or below the threshold the tool is a no-op and makes no model call.
const SummarizeThresholdWords = 500

var _ output.ToolPort = (*SummarizationTool)(nil)

// SummarizationTool condenses long text with the fast model.
type SummarizationTool struct {
	llm    output.LLMPort
	tracer output.TracerPort
	logger output.LoggerPort
}

func NewSummarizationTool(fastLLM output.LLMPort, tracer output.TracerPort, logger output.LoggerPort) *SummarizationTool {
	return &SummarizationTool{
		llm:    fastLLM,
		tracer: tracer,
		logger: logger,
	}
}

func (t *SummarizationTool) Name() entity.ToolName {
	return entity.ToolSummarization
}

func (t *SummarizationTool) Description() string {
	return "Summarize long text content into concise, factual summaries. " +
		"Input should be the text content to summarize. " +
		"Returns a structured summary focusing on key facts and insights."
}

func (t *SummarizationTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text content to summarize.",
			},
		},
		"required": []string{"text"},
	}
}

type summarizeInput struct {
	Text string `json:"text"`
}

func (t *SummarizationTool) Execute(ctx context.Context, arguments string) (string, error) {
	var args summarizeInput
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid input format: %w", err)
	}

	words := len(strings.Fields(args.Text))
	if words <= SummarizeThresholdWords {
		t.logger.Debug("Summarization skipped", "words", words)
		return args.Text, nil
	}

	prompt, err := prompts.GenerateSummarizePrompt(prompts.SummarizePromptData{Text: args.Text})
	if err != nil {
		return "", fmt.Errorf("failed to generate summarize prompt: %w", err)
	}

	ctx, span := t.tracer.StartSpan(ctx, string(entity.ToolSummarization), "tool", map[string]any{"words": words})

	resp, err := t.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: prompt}},
	})
	if err != nil {
		span.End(nil, err)
		t.logger.Warn("Summarization model call failed, using extractive fallback", "error", err)
		return extractiveSummary(args.Text), nil
	}

	summary := strings.TrimSpace(resp.Message.Content)
	span.End(map[string]any{"summary_len": len(summary)}, nil)
	t.logger.Info("Summarization completed", "inputWords", words, "summaryLen", len(summary))

	return summary, nil
}

// extractiveSummary keeps the leading sentences plus up to one early sentence
// that mentions AI, mirroring the behavior when the model is unavailable.
func extractiveSummary(text string) string {
	words := strings.Fields(text)
	if len(words) <= 100 {
		return text
	}

	sentences := strings.Split(text, ".")
	summary := sentences[:min(2, len(sentences))]
	for _, s := range sentences[min(2, len(sentences)):min(5, len(sentences))] {
		if strings.Contains(s, "AI") || strings.Contains(strings.ToLower(s), "artificial intelligence") {
			summary = append(summary, s)
		}
	}
	if len(summary) > 3 {
		summary = summary[:3]
	}
	return strings.TrimSpace(strings.Join(summary, ".")) + "."
}
