// Package audit emits structured audit events for every gated mutation and
// every authorization denial. The core only produces events; durable storage
// is the collaborator's concern, expressed here as the Recorder interface.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Outcome classifies how an audited operation ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeDenied  Outcome = "denied"
	OutcomeError   Outcome = "error"
)

// Event is a single audit record: who did what, to which entity, and how
// it ended.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Actor     string    `json:"actor"`
	Role      string    `json:"role"`
	Operation string    `json:"operation"`
	EntityID  int64     `json:"entity_id,omitempty"`
	Outcome   Outcome   `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	Recorded  time.Time `json:"recorded"`
}

// Recorder persists audit events. Implementations decide durability; the
// trail never fails the audited operation on a recorder error.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// Trail fans audit events out to zero or more recorders and always emits a
// structured log line for each event.
type Trail struct {
	logger    zerolog.Logger
	recorders []Recorder
}

func NewTrail(logger zerolog.Logger, recorders ...Recorder) *Trail {
	return &Trail{logger: logger, recorders: recorders}
}

// Record assigns the event identity and timestamp, logs it, and forwards it
// to every recorder. Recorder failures are logged and swallowed.
func (t *Trail) Record(ctx context.Context, e Event) {
	e.ID = uuid.New()
	e.Recorded = time.Now().UTC()

	evt := t.logger.Info()
	if e.Outcome != OutcomeSuccess {
		evt = t.logger.Warn()
	}
	evt.
		Str("audit_id", e.ID.String()).
		Str("actor", e.Actor).
		Str("role", e.Role).
		Str("operation", e.Operation).
		Int64("entity_id", e.EntityID).
		Str("outcome", string(e.Outcome)).
		Str("detail", e.Detail).
		Msg("audit")

	for _, r := range t.recorders {
		if err := r.Record(ctx, e); err != nil {
			t.logger.Error().Err(err).
				Str("operation", e.Operation).
				Msg("failed to record audit event")
		}
	}
}

// Success records a successfully completed mutation on the given entity.
func (t *Trail) Success(ctx context.Context, actor, role, operation string, entityID int64) {
	t.Record(ctx, Event{Actor: actor, Role: role, Operation: operation, EntityID: entityID, Outcome: OutcomeSuccess})
}

// Denied records an authorization denial for the given operation.
func (t *Trail) Denied(ctx context.Context, actor, role, operation string) {
	t.Record(ctx, Event{Actor: actor, Role: role, Operation: operation, Outcome: OutcomeDenied})
}

// Error records a mutation that reached the store and failed there.
func (t *Trail) Error(ctx context.Context, actor, role, operation, detail string) {
	t.Record(ctx, Event{Actor: actor, Role: role, Operation: operation, Outcome: OutcomeError, Detail: detail})
}
