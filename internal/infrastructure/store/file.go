package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

var _ output.ResultStore = (*FileStore)(nil)

// FileStore writes each completed run to a timestamped JSON file and keeps a
// results.json pointing at the latest run.
type FileStore struct {
	dir    string
	logger output.LoggerPort
}

func NewFileStore(dir string, logger output.LoggerPort) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir, logger: logger}
}

func (s *FileStore) Save(ctx context.Context, result *entity.WorkflowResult) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	filename := fmt.Sprintf("results_%s.json", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write result file: %w", err)
	}

	latest := filepath.Join(s.dir, "results.json")
	if err := os.WriteFile(latest, data, 0644); err != nil {
		return "", fmt.Errorf("write latest result file: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Results saved", "file", path)
	}

	return path, nil
}
