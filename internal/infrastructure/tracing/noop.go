package tracing

import (
	"context"

	"research-agent/internal/application/port/output"
)

var _ output.TracerPort = (*NoopTracer)(nil)

// NoopTracer is used when tracing is disabled or no collector credential is
// configured.
type NoopTracer struct{}

func NewNoopTracer() *NoopTracer { return &NoopTracer{} }

type noopSpan struct{}

func (noopSpan) End(map[string]any, error) {}

func (*NoopTracer) StartSpan(ctx context.Context, name, runType string, inputs map[string]any) (context.Context, output.Span) {
	return ctx, noopSpan{}
}
