package entity

import "time"

// ResearchFindings is what the research agent hands to the analysis phase.
type ResearchFindings struct {
	Query            string `json:"query"`
	Findings         string `json:"findings"`
	RawSearchResults string `json:"raw_search_results,omitempty"`
}

// BusinessImpact groups expected impact by horizon.
type BusinessImpact struct {
	ShortTerm  string `json:"short_term"`
	MediumTerm string `json:"medium_term"`
	LongTerm   string `json:"long_term"`
}

// AnalysisReport is the structured output of the analysis agent.
type AnalysisReport struct {
	KeyTrends      []string       `json:"key_trends"`
	Risks          []string       `json:"risks"`
	Opportunities  []string       `json:"opportunities"`
	BusinessImpact BusinessImpact `json:"business_impact"`
	MarketDynamics []string       `json:"market_dynamics"`
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Timeline string

const (
	TimelineShort  Timeline = "Short term"
	TimelineMedium Timeline = "Medium term"
	TimelineLong   Timeline = "Long term"
)

// Recommendation is one actionable item produced by the decision tool.
type Recommendation struct {
	Action    string   `json:"action"`
	Rationale string   `json:"rationale"`
	Priority  Priority `json:"priority"`
	Timeline  Timeline `json:"timeline"`
}

// DecisionOutput is the structured output of the decision agent.
type DecisionOutput struct {
	Recommendations   []Recommendation `json:"recommendations"`
	KeyConsiderations []string         `json:"key_considerations"`
	RiskMitigation    []string         `json:"risk_mitigation"`
}

// ExecutionSummary records completion per agent for the final result.
type ExecutionSummary struct {
	ResearchAgent string `json:"research_agent"`
	AnalysisAgent string `json:"analysis_agent"`
	DecisionAgent string `json:"decision_agent"`
}

// WorkflowResult is the aggregate produced once per successful run. It is the
// unit persisted to the results file.
type WorkflowResult struct {
	Query              string           `json:"query"`
	Summary            string           `json:"summary"`
	KeyTrends          []string         `json:"key_trends"`
	Risks              []string         `json:"risks,omitempty"`
	Opportunities      []string         `json:"opportunities,omitempty"`
	BusinessImpact     BusinessImpact   `json:"business_impact"`
	MarketDynamics     []string         `json:"market_dynamics,omitempty"`
	RecommendedActions []Recommendation `json:"recommended_actions"`
	KeyConsiderations  []string         `json:"key_considerations,omitempty"`
	RiskMitigation     []string         `json:"risk_mitigation,omitempty"`
	Status             string           `json:"status"`
	ExecutionSummary   ExecutionSummary `json:"agent_execution_summary"`
	CompletedAt        time.Time        `json:"completed_at"`
}
