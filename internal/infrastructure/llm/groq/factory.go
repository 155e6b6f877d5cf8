package groq

import (
	"time"

	"research-agent/internal/application/port/output"
)

const (
	DefaultReasoningModel = "llama-3.3-70b-versatile"
	DefaultFastModel      = "llama-3.1-8b-instant"
)

var _ output.ModelProvider = (*Factory)(nil)

// Factory builds the two model roles with conservative settings: the reasoning
// model for complex analysis and the fast model for latency-sensitive calls.
type Factory struct {
	reasoning *Adapter
	fast      *Adapter
}

type FactoryConfig struct {
	APIKey         string
	ReasoningModel string
	FastModel      string
	Timeout        time.Duration
	Logger         output.LoggerPort
}

func NewFactory(cfg FactoryConfig) (*Factory, error) {
	if cfg.ReasoningModel == "" {
		cfg.ReasoningModel = DefaultReasoningModel
	}
	if cfg.FastModel == "" {
		cfg.FastModel = DefaultFastModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	reasoningCfg := DefaultConfig(cfg.APIKey, cfg.ReasoningModel)
	reasoningCfg.Temperature = 0.1
	reasoningCfg.MaxTokens = 2048
	reasoningCfg.Timeout = cfg.Timeout
	reasoningCfg.Logger = cfg.Logger

	reasoning, err := NewAdapter(reasoningCfg)
	if err != nil {
		return nil, err
	}

	fastCfg := DefaultConfig(cfg.APIKey, cfg.FastModel)
	fastCfg.Temperature = 0.0
	fastCfg.MaxTokens = 512
	fastCfg.Timeout = cfg.Timeout
	fastCfg.Logger = cfg.Logger

	fast, err := NewAdapter(fastCfg)
	if err != nil {
		return nil, err
	}

	return &Factory{reasoning: reasoning, fast: fast}, nil
}

func (f *Factory) Reasoning() output.LLMPort { return f.reasoning }

func (f *Factory) Fast() output.LLMPort { return f.fast }
