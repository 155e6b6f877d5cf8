package input

import (
	"context"

	"research-agent/internal/domain/entity"
)

// WorkflowExecutor runs one query through the full research → analysis →
// decision pipeline.
type WorkflowExecutor interface {
	Execute(ctx context.Context, query string) (*entity.WorkflowResult, error)
}
