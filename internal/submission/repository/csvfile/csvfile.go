// Package csvfile is the on-disk fallback repository, used when Google
// Sheets credentials are not configured. Rows are appended to a local CSV
// so field offices without cloud access still keep every application.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"smartgov-assistant/internal/submission"
)

type implRepository struct {
	mu   sync.Mutex
	path string
}

// New creates a CSV repository writing to path.
func New(path string) submission.Repository {
	return &implRepository{path: path}
}

func (r *implRepository) Append(ctx context.Context, record *submission.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open submissions file: %w", err)
	}
	defer f.Close()

	row := make([]string, 0, 6+len(record.Fields))
	row = append(row,
		record.SubmittedAt.Format(time.RFC3339),
		record.TrackingID,
		string(record.Kind),
		record.UserID,
		record.Username,
		string(record.Language),
	)
	for _, field := range record.Fields {
		row = append(row, field.Value)
	}

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to write submission row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush submission row: %w", err)
	}
	return nil
}
