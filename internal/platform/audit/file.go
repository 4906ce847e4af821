package audit

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// FileRecorder appends one line per audit event to a log file. It exists for
// deployments that want the classic append-only audit log next to the
// structured stream.
type FileRecorder struct {
	mu sync.Mutex
	f  *os.File
}

func NewFileRecorder(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit log %s: %w", path, err)
	}
	return &FileRecorder{f: f}, nil
}

func (r *FileRecorder) Record(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := fmt.Sprintf("[%s] %s role=%s actor=%s entity=%d outcome=%s",
		e.Recorded.Format("2006-01-02T15:04:05Z07:00"),
		e.Operation, e.Role, e.Actor, e.EntityID, e.Outcome)
	if e.Detail != "" {
		line += " detail=" + e.Detail
	}
	if _, err := fmt.Fprintln(r.f, line); err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}
	return nil
}

func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Close()
}
