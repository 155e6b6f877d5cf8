package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages []entity.Message
	Tools    []entity.ToolDefinition
}

type ChatResponse struct {
	Message entity.Message
}

// ModelProvider hands out the two configured model roles. The reasoning model
// carries complex analysis; the fast model serves latency-sensitive calls such
// as summarization.
type ModelProvider interface {
	Reasoning() LLMPort
	Fast() LLMPort
}
