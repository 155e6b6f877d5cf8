package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

// ResultStore persists completed workflow results. Only successful runs reach
// it; a failed run must leave no partial record behind.
type ResultStore interface {
	Save(ctx context.Context, result *entity.WorkflowResult) (string, error)
}
