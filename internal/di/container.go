package di

import (
	"fmt"
	"time"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/application/service"
	"research-agent/internal/infrastructure/llm/groq"
	"research-agent/internal/infrastructure/logger"
	"research-agent/internal/infrastructure/search"
	"research-agent/internal/infrastructure/store"
	"research-agent/internal/infrastructure/tracing"
	"research-agent/internal/usecase/agents/analysis"
	"research-agent/internal/usecase/agents/decision"
	"research-agent/internal/usecase/agents/research"
	"research-agent/internal/usecase/orchestrator"
	"research-agent/internal/usecase/tools"
)

type Container struct {
	Logger   output.LoggerPort
	Models   output.ModelProvider
	Tracer   output.TracerPort
	Tools    output.ToolRegistry
	Workflow input.WorkflowExecutor
	Store    output.ResultStore
}

type Config struct {
	GroqAPIKey     string
	ReasoningModel string
	FastModel      string
	TracingEnabled bool
	TracingAPIKey  string
	TracingProject string
	ResultsDir     string
	LLMTimeout     time.Duration
	Progress       output.UserInteractionPort
}

// NewContainer wires one run's dependency graph. The query only names the
// per-run log file.
func NewContainer(query string, cfg Config) (*Container, error) {
	log, err := logger.NewLoggerAdapter(query)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	models, err := groq.NewFactory(groq.FactoryConfig{
		APIKey:         cfg.GroqAPIKey,
		ReasoningModel: cfg.ReasoningModel,
		FastModel:      cfg.FastModel,
		Timeout:        cfg.LLMTimeout,
		Logger:         log,
	})
	if err != nil {
		log.Close()
		return nil, err
	}

	var tracer output.TracerPort
	if cfg.TracingEnabled && cfg.TracingAPIKey != "" {
		tracer = tracing.NewLangSmithTracer(tracing.Config{
			APIKey:  cfg.TracingAPIKey,
			Project: cfg.TracingProject,
			Logger:  log,
		})
	} else {
		tracer = tracing.NewNoopTracer()
	}

	searchCfg := search.DefaultConfig()
	searchCfg.Logger = log
	searcher := search.NewDuckDuckGoAdapter(searchCfg)

	searchTool := tools.NewSearchTool(searcher, tracer, log)
	summarizationTool := tools.NewSummarizationTool(models.Fast(), tracer, log)
	decisionTool := tools.NewDecisionTool(models.Reasoning(), tracer, log)

	registry := service.NewToolRegistry()
	registry.Register(searchTool)
	registry.Register(summarizationTool)
	registry.Register(decisionTool)

	researchAgent := research.New(models.Reasoning(), searchTool, summarizationTool, registry, log)
	analysisAgent := analysis.New(models.Reasoning(), log)
	decisionAgent := decision.New(models.Reasoning(), decisionTool, log)

	var progress orchestrator.PhaseNotifier
	if cfg.Progress != nil {
		progress = cfg.Progress
	}

	workflow := orchestrator.New(researchAgent, analysisAgent, decisionAgent, registry, tracer, log, progress)

	return &Container{
		Logger:   log,
		Models:   models,
		Tracer:   tracer,
		Tools:    registry,
		Workflow: workflow,
		Store:    store.NewFileStore(cfg.ResultsDir, log),
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}
