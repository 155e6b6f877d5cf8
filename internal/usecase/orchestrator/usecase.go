package orchestrator

import (
	"context"
	"time"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ input.WorkflowExecutor = (*UseCase)(nil)

type ResearchAgent interface {
	Execute(ctx context.Context, query string) (*entity.ResearchFindings, error)
}

type AnalysisAgent interface {
	Execute(ctx context.Context, findings *entity.ResearchFindings) (*entity.AnalysisReport, error)
}

type DecisionAgent interface {
	Execute(ctx context.Context, report *entity.AnalysisReport) (*entity.DecisionOutput, error)
}

// PhaseNotifier receives phase transitions as they happen. Nil disables
// progress reporting.
type PhaseNotifier interface {
	ShowPhase(ctx context.Context, phase entity.Phase)
}

// UseCase coordinates the fixed workflow: Researching → Analyzing → Deciding.
// Each phase is a strict prerequisite for the next; the first failure aborts
// the remaining phases and no partial result is produced.
type UseCase struct {
	research ResearchAgent
	analysis AnalysisAgent
	decision DecisionAgent
	tools    output.ToolRegistry
	tracer   output.TracerPort
	logger   output.LoggerPort
	progress PhaseNotifier
}

func New(
	research ResearchAgent,
	analysis AnalysisAgent,
	decision DecisionAgent,
	tools output.ToolRegistry,
	tracer output.TracerPort,
	logger output.LoggerPort,
	progress PhaseNotifier,
) *UseCase {
	return &UseCase{
		research: research,
		analysis: analysis,
		decision: decision,
		tools:    tools,
		tracer:   tracer,
		logger:   logger,
		progress: progress,
	}
}

func (uc *UseCase) notify(ctx context.Context, phase entity.Phase) {
	if uc.progress != nil {
		uc.progress.ShowPhase(ctx, phase)
	}
}

type resettable interface {
	Reset()
}

func (uc *UseCase) Execute(ctx context.Context, query string) (*entity.WorkflowResult, error) {
	uc.logger.Info("Workflow started", "query", query)

	for _, tool := range uc.tools.All() {
		if r, ok := tool.(resettable); ok {
			r.Reset()
		}
	}

	ctx, rootSpan := uc.tracer.StartSpan(ctx, "ai_research_orchestrator", "chain", map[string]any{"query": query})

	uc.notify(ctx, entity.PhaseResearching)
	findings, err := uc.executeResearch(ctx, query)
	if err != nil {
		orchErr := &entity.OrchestrationError{Phase: entity.PhaseResearching, Err: err}
		rootSpan.End(nil, orchErr)
		uc.logger.Error("Workflow aborted", "phase", entity.PhaseResearching, "error", err)
		return nil, orchErr
	}

	uc.notify(ctx, entity.PhaseAnalyzing)
	report, err := uc.executeAnalysis(ctx, findings)
	if err != nil {
		orchErr := &entity.OrchestrationError{Phase: entity.PhaseAnalyzing, Err: err}
		rootSpan.End(nil, orchErr)
		uc.logger.Error("Workflow aborted", "phase", entity.PhaseAnalyzing, "error", err)
		return nil, orchErr
	}

	uc.notify(ctx, entity.PhaseDeciding)
	decisions, err := uc.executeDecision(ctx, report)
	if err != nil {
		orchErr := &entity.OrchestrationError{Phase: entity.PhaseDeciding, Err: err}
		rootSpan.End(nil, orchErr)
		uc.logger.Error("Workflow aborted", "phase", entity.PhaseDeciding, "error", err)
		return nil, orchErr
	}

	result := assembleResult(query, findings, report, decisions)
	rootSpan.End(map[string]any{"recommendations": len(result.RecommendedActions)}, nil)
	uc.logger.Info("Workflow completed", "query", query, "recommendations", len(result.RecommendedActions))

	return result, nil
}

func (uc *UseCase) executeResearch(ctx context.Context, query string) (*entity.ResearchFindings, error) {
	ctx, span := uc.tracer.StartSpan(ctx, "research_phase", "chain", map[string]any{"query": query})
	findings, err := uc.research.Execute(ctx, query)
	if err != nil {
		span.End(nil, err)
		return nil, err
	}
	span.End(map[string]any{"findings_len": len(findings.Findings)}, nil)
	return findings, nil
}

func (uc *UseCase) executeAnalysis(ctx context.Context, findings *entity.ResearchFindings) (*entity.AnalysisReport, error) {
	ctx, span := uc.tracer.StartSpan(ctx, "analysis_phase", "chain", map[string]any{"findings_len": len(findings.Findings)})
	report, err := uc.analysis.Execute(ctx, findings)
	if err != nil {
		span.End(nil, err)
		return nil, err
	}
	span.End(map[string]any{"trends": len(report.KeyTrends)}, nil)
	return report, nil
}

func (uc *UseCase) executeDecision(ctx context.Context, report *entity.AnalysisReport) (*entity.DecisionOutput, error) {
	ctx, span := uc.tracer.StartSpan(ctx, "decision_phase", "chain", map[string]any{"trends": len(report.KeyTrends)})
	decisions, err := uc.decision.Execute(ctx, report)
	if err != nil {
		span.End(nil, err)
		return nil, err
	}
	span.End(map[string]any{"recommendations": len(decisions.Recommendations)}, nil)
	return decisions, nil
}

func assembleResult(
	query string,
	findings *entity.ResearchFindings,
	report *entity.AnalysisReport,
	decisions *entity.DecisionOutput,
) *entity.WorkflowResult {
	return &entity.WorkflowResult{
		Query:              query,
		Summary:            findings.Findings,
		KeyTrends:          report.KeyTrends,
		Risks:              report.Risks,
		Opportunities:      report.Opportunities,
		BusinessImpact:     report.BusinessImpact,
		MarketDynamics:     report.MarketDynamics,
		RecommendedActions: decisions.Recommendations,
		KeyConsiderations:  decisions.KeyConsiderations,
		RiskMitigation:     decisions.RiskMitigation,
		Status:             "completed",
		ExecutionSummary: entity.ExecutionSummary{
			ResearchAgent: "completed",
			AnalysisAgent: "completed",
			DecisionAgent: "completed",
		},
		CompletedAt: time.Now().UTC(),
	}
}
