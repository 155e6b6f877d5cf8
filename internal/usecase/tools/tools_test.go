package tools

import (
	"context"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
func (l nopLogger) WithField(string, any) output.LoggerPort { return l }
func (nopLogger) Close() error { return nil }

type nopTracer struct{}

type nopSpan struct{}

func (nopSpan) End(map[string]any, error) {}

func (nopTracer) StartSpan(ctx context.Context, name, runType string, inputs map[string]any) (context.Context, output.Span) {
	return ctx, nopSpan{}
}

type mockLLM struct {
	calls     int
	responses []string
	err       error
}

func (m *mockLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	content := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return &output.ChatResponse{
		Message: entity.Message{Role: entity.RoleAssistant, Content: content},
	}, nil
}

type mockSearcher struct {
	calls   int
	results []string
	err     error
}

func (m *mockSearcher) Search(ctx context.Context, query string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	result := m.results[0]
	if len(m.results) > 1 {
		m.results = m.results[1:]
	}
	return result, nil
}
