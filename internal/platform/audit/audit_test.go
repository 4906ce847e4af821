package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type memRecorder struct {
	events []Event
	fail   bool
}

func (m *memRecorder) Record(_ context.Context, e Event) error {
	if m.fail {
		return fmt.Errorf("recorder down")
	}
	m.events = append(m.events, e)
	return nil
}

func TestTrail_RecordFansOut(t *testing.T) {
	rec := &memRecorder{}
	trail := NewTrail(zerolog.Nop(), rec)

	trail.Success(context.Background(), "alice", "Admin", "patient.create", 7)

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	e := rec.events[0]
	if e.Role != "Admin" || e.Operation != "patient.create" || e.EntityID != 7 {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Outcome != OutcomeSuccess {
		t.Errorf("expected success outcome, got %s", e.Outcome)
	}
	if e.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Error("expected event id to be assigned")
	}
	if e.Recorded.IsZero() {
		t.Error("expected recorded timestamp to be assigned")
	}
}

func TestTrail_Denied(t *testing.T) {
	rec := &memRecorder{}
	trail := NewTrail(zerolog.Nop(), rec)

	trail.Denied(context.Background(), "bob", "Receptionist", "invoice.create")

	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	if rec.events[0].Outcome != OutcomeDenied {
		t.Errorf("expected denied outcome, got %s", rec.events[0].Outcome)
	}
}

func TestTrail_RecorderFailureIsSwallowed(t *testing.T) {
	trail := NewTrail(zerolog.Nop(), &memRecorder{fail: true})

	// Must not panic or propagate.
	trail.Success(context.Background(), "alice", "Admin", "patient.update", 3)
}

func TestFileRecorder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	fr, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer fr.Close()

	trail := NewTrail(zerolog.Nop(), fr)
	trail.Denied(context.Background(), "bob", "Receptionist", "invoice.create")
	trail.Success(context.Background(), "alice", "Doctor", "invoice.create", 12)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "invoice.create") || !strings.Contains(lines[0], "outcome=denied") {
		t.Errorf("unexpected first line: %s", lines[0])
	}
	if !strings.Contains(lines[1], "entity=12") || !strings.Contains(lines[1], "outcome=success") {
		t.Errorf("unexpected second line: %s", lines[1])
	}
}
