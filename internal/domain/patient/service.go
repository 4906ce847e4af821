package patient

import (
	"context"
	"regexp"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/audit"
	"github.com/meditrack/meditrack/internal/platform/auth"
)

// writeRoles is the fixed allowed-role set for patient create and update.
var writeRoles = []auth.Role{auth.RoleAdmin, auth.RoleReceptionist, auth.RoleDoctor}

// searchColumns maps a caller-supplied search field to the stored column.
// Unrecognized fields fall back to the disease column.
var searchColumns = map[string]string{
	"disease": "disease",
	"status":  "status",
	"name":    "name",
}

type Service struct {
	repo  Repository
	gate  *auth.Gate
	trail *audit.Trail
}

func NewService(repo Repository, gate *auth.Gate, trail *audit.Trail) *Service {
	return &Service{repo: repo, gate: gate, trail: trail}
}

// Create validates and persists a new patient, returning the assigned
// identity. The caller's role must be in the patient write set.
func (s *Service) Create(ctx context.Context, caller auth.Identity, p *Patient) (int64, error) {
	if err := s.gate.Authorize(ctx, caller, writeRoles, "patient.create"); err != nil {
		return 0, err
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	id, err := s.repo.Create(ctx, p)
	if err != nil {
		s.trail.Error(ctx, caller.Name, string(caller.Role), "patient.create", err.Error())
		return 0, err
	}
	p.ID = id
	s.trail.Success(ctx, caller.Name, string(caller.Role), "patient.create", id)
	return id, nil
}

// Update rewrites an existing patient. A missing identity is rejected
// before the store is touched.
func (s *Service) Update(ctx context.Context, caller auth.Identity, p *Patient) error {
	if err := s.gate.Authorize(ctx, caller, writeRoles, "patient.update"); err != nil {
		return err
	}
	if p.ID == 0 {
		return apperr.Validation("patient id is required for update")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.trail.Error(ctx, caller.Name, string(caller.Role), "patient.update", err.Error())
		return err
	}
	s.trail.Success(ctx, caller.Name, string(caller.Role), "patient.update", p.ID)
	return nil
}

// Get returns the patient with the given identity, or nil when absent.
func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all patients, most recently created first.
func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

// Match is one pattern-search hit: the patient's name and identity.
type Match struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// Search filters patients by a case-insensitive regular expression over the
// chosen field (disease, status, or name; anything else searches disease).
// The match is unanchored; a NULL field value is treated as empty.
func (s *Service) Search(ctx context.Context, pattern, field string) ([]Match, error) {
	column, ok := searchColumns[field]
	if !ok {
		column = "disease"
	}

	rx, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return nil, &apperr.PatternError{Pattern: pattern, Err: err}
	}

	values, err := s.repo.FieldValues(ctx, column)
	if err != nil {
		return nil, err
	}

	matches := []Match{}
	for _, fv := range values {
		if rx.MatchString(fv.Value) {
			matches = append(matches, Match{Name: fv.Name, ID: fv.ID})
		}
	}
	return matches, nil
}
