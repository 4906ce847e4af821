package auth

import (
	"context"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/audit"
)

// Gate is the authorization check invoked at the start of each gated
// operation. A denial is recorded on the audit trail before it is returned,
// and the underlying operation must not run.
type Gate struct {
	trail *audit.Trail
}

func NewGate(trail *audit.Trail) *Gate {
	return &Gate{trail: trail}
}

// Authorize permits the call when the caller's role is a member of allowed.
// Otherwise it records the denial and returns an AccessDenied error.
func (g *Gate) Authorize(ctx context.Context, caller Identity, allowed []Role, operation string) error {
	for _, r := range allowed {
		if caller.Role == r {
			return nil
		}
	}
	g.trail.Denied(ctx, caller.Name, string(caller.Role), operation)
	return &apperr.AccessDenied{Role: string(caller.Role), Operation: operation}
}
