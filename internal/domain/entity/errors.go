package entity

import "fmt"

// ConfigurationError is fatal at startup: a required credential or setting is
// missing.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s is not set", e.Key)
}

// ToolInvocationError wraps a failed external call made by a tool.
type ToolInvocationError struct {
	Tool ToolName
	Err  error
}

func (e *ToolInvocationError) Error() string {
	return fmt.Sprintf("tool %s invocation failed: %v", e.Tool, e.Err)
}

func (e *ToolInvocationError) Unwrap() error { return e.Err }

// AgentParsingError signals malformed model output. Agents catch it internally
// and retry with a correction message within their iteration cap.
type AgentParsingError struct {
	Agent AgentType
	Err   error
}

func (e *AgentParsingError) Error() string {
	return fmt.Sprintf("agent %s produced unparseable output: %v", e.Agent, e.Err)
}

func (e *AgentParsingError) Unwrap() error { return e.Err }

// AgentIncompleteError signals an agent exhausted its iteration cap without a
// final answer.
type AgentIncompleteError struct {
	Agent      AgentType
	Iterations int
}

func (e *AgentIncompleteError) Error() string {
	return fmt.Sprintf("agent %s incomplete after %d iterations", e.Agent, e.Iterations)
}

// OrchestrationError wraps a phase failure. The remaining phases are aborted
// and no result is persisted.
type OrchestrationError struct {
	Phase Phase
	Err   error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("orchestration failed during %s: %v", e.Phase, e.Err)
}

func (e *OrchestrationError) Unwrap() error { return e.Err }
