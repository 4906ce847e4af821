// Package auth carries the asserted caller identity and gates mutating
// operations by role. Roles are a trusted input from the presentation
// collaborator; no credential verification happens here.
package auth

import "context"

// Role is the asserted role of a caller.
type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleDoctor       Role = "Doctor"
	RoleReceptionist Role = "Receptionist"
)

// Capabilities describes what a role may do beyond the per-operation
// allowed-role sets.
type Capabilities struct {
	CanEditBilling bool
}

var roleCapabilities = map[Role]Capabilities{
	RoleAdmin:        {CanEditBilling: true},
	RoleDoctor:       {CanEditBilling: true},
	RoleReceptionist: {CanEditBilling: false},
}

// Known reports whether r is one of the recognized roles.
func (r Role) Known() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Capabilities returns the capability set for r. Unknown roles get the
// zero value, which permits nothing.
func (r Role) Capabilities() Capabilities {
	return roleCapabilities[r]
}

// Identity is the caller identity produced by the login collaborator:
// a display name and an asserted role.
type Identity struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type contextKey struct{}

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the caller identity stored in ctx, or the
// zero Identity when none is present.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(contextKey{}).(Identity)
	return id
}
