package tracing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"research-agent/internal/application/port/output"

	"github.com/google/uuid"
)

const defaultEndpoint = "https://api.smith.langchain.com"

type parentRunKey struct{}

type runRef struct {
	runID   string
	traceID string
}

var _ output.TracerPort = (*LangSmithTracer)(nil)

// LangSmithTracer posts run records to a LangSmith-compatible collector.
// Delivery is best-effort: failures are logged at debug and dropped, telemetry
// never feeds back into control flow.
type LangSmithTracer struct {
	client   *http.Client
	endpoint string
	apiKey   string
	project  string
	logger   output.LoggerPort
}

type Config struct {
	Endpoint string
	APIKey   string
	Project  string
	Timeout  time.Duration
	Logger   output.LoggerPort
}

func NewLangSmithTracer(cfg Config) *LangSmithTracer {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Project == "" {
		cfg.Project = "ai-research-assistant"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &LangSmithTracer{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		project:  cfg.Project,
		logger:   cfg.Logger,
	}
}

type runPayload struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	RunType     string         `json:"run_type,omitempty"`
	StartTime   string         `json:"start_time,omitempty"`
	EndTime     string         `json:"end_time,omitempty"`
	Inputs      map[string]any `json:"inputs,omitempty"`
	Outputs     map[string]any `json:"outputs,omitempty"`
	Error       string         `json:"error,omitempty"`
	SessionName string         `json:"session_name,omitempty"`
	ParentRunID string         `json:"parent_run_id,omitempty"`
	TraceID     string         `json:"trace_id,omitempty"`
}

type langSmithSpan struct {
	tracer *LangSmithTracer
	runID  string
}

func (t *LangSmithTracer) StartSpan(ctx context.Context, name, runType string, inputs map[string]any) (context.Context, output.Span) {
	runID := uuid.NewString()
	traceID := runID
	parentID := ""

	if parent, ok := ctx.Value(parentRunKey{}).(runRef); ok {
		parentID = parent.runID
		traceID = parent.traceID
	}

	t.post(ctx, http.MethodPost, "/runs", runPayload{
		ID:          runID,
		Name:        name,
		RunType:     runType,
		StartTime:   time.Now().UTC().Format(time.RFC3339Nano),
		Inputs:      inputs,
		SessionName: t.project,
		ParentRunID: parentID,
		TraceID:     traceID,
	})

	ctx = context.WithValue(ctx, parentRunKey{}, runRef{runID: runID, traceID: traceID})
	return ctx, &langSmithSpan{tracer: t, runID: runID}
}

func (s *langSmithSpan) End(outputs map[string]any, err error) {
	payload := runPayload{
		ID:      s.runID,
		EndTime: time.Now().UTC().Format(time.RFC3339Nano),
		Outputs: outputs,
	}
	if err != nil {
		payload.Error = err.Error()
	}
	// context.Background: the span may outlive a canceled request context.
	s.tracer.post(context.Background(), http.MethodPatch, "/runs/"+s.runID, payload)
}

func (t *LangSmithTracer) post(ctx context.Context, method, path string, payload runPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		t.debugf("marshal trace payload: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, method, t.endpoint+path, bytes.NewReader(body))
	if err != nil {
		t.debugf("build trace request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		t.debugf("send trace: %v", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		t.debugf("trace collector returned %d", resp.StatusCode)
	}
}

func (t *LangSmithTracer) debugf(format string, args ...any) {
	if t.logger != nil {
		t.logger.Debug("Tracing delivery issue", "detail", fmt.Sprintf(format, args...))
	}
}
