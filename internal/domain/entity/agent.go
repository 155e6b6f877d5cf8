package entity

type AgentType string

const (
	AgentTypeOrchestrator AgentType = "orchestrator"
	AgentTypeResearch     AgentType = "research"
	AgentTypeAnalysis     AgentType = "analysis"
	AgentTypeDecision     AgentType = "decision"
)

type ToolName string

const (
	ToolSearch        ToolName = "search_tool"
	ToolSummarization ToolName = "summarization_tool"
	ToolDecision      ToolName = "decision_tool"
)

// Phase is one stage of the fixed research workflow. Phases run strictly in
// declaration order; each is a prerequisite for the next.
type Phase string

const (
	PhaseResearching Phase = "researching"
	PhaseAnalyzing   Phase = "analyzing"
	PhaseDeciding    Phase = "deciding"
)
