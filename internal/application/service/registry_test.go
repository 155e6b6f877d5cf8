package service

import (
	"context"
	"testing"

	"research-agent/internal/domain/entity"
)

type stubTool struct {
	name entity.ToolName
	desc string
}

func (t *stubTool) Name() entity.ToolName { return t.name }
func (t *stubTool) Description() string { return t.desc }
func (t *stubTool) Parameters() map[string]interface{} { return map[string]interface{}{"type": "object"} }
func (t *stubTool) Execute(ctx context.Context, arguments string) (string, error) {
	return "", nil
}

func TestToolRegistry(t *testing.T) {
	registry := NewToolRegistry()
	registry.Register(&stubTool{name: entity.ToolSearch, desc: "search things"})
	registry.Register(&stubTool{name: entity.ToolDecision, desc: "decide things"})

	tool, ok := registry.Get(entity.ToolSearch)
	if !ok {
		t.Fatal("Expected search tool registered")
	}
	if tool.Name() != entity.ToolSearch {
		t.Errorf("Expected %s, got %s", entity.ToolSearch, tool.Name())
	}

	if _, ok := registry.Get(entity.ToolSummarization); ok {
		t.Error("Expected unregistered tool lookup to fail")
	}

	if len(registry.All()) != 2 {
		t.Errorf("Expected 2 tools, got %d", len(registry.All()))
	}

	defs := registry.Definitions()
	if len(defs) != 2 {
		t.Fatalf("Expected 2 definitions, got %d", len(defs))
	}
	for _, def := range defs {
		if def.Description == "" || def.Parameters == nil {
			t.Errorf("Incomplete definition for %s", def.Name)
		}
	}
}
