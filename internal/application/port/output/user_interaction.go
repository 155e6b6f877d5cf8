package output

import (
	"context"

	"research-agent/internal/domain/entity"
)

type UserInteractionPort interface {
	SelectQuery(ctx context.Context) (string, bool, error)
	ShowPhase(ctx context.Context, phase entity.Phase)
	ShowReport(ctx context.Context, result *entity.WorkflowResult)
	AskRunAgain(ctx context.Context) (bool, error)
}
