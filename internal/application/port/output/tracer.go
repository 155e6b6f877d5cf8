package output

import "context"

// Span is one in-flight trace record. End is safe to call with a nil error and
// nil outputs.
type Span interface {
	End(outputs map[string]any, err error)
}

// TracerPort emits one-way telemetry about agent and tool invocations. It must
// never influence control flow: implementations swallow delivery failures.
type TracerPort interface {
	// StartSpan opens a run of the given type ("chain" or "tool") and returns
	// a context carrying it so nested spans become its children.
	StartSpan(ctx context.Context, name, runType string, inputs map[string]any) (context.Context, Span)
}
