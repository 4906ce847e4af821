package billing

import (
	"context"
	"time"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/audit"
	"github.com/meditrack/meditrack/internal/platform/auth"
)

// createRoles is the fixed allowed-role set for invoice creation.
// Receptionists cannot edit billing data.
var createRoles = []auth.Role{auth.RoleAdmin, auth.RoleDoctor}

// PatientDirectory answers whether a patient identity exists.
type PatientDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo     Repository
	patients PatientDirectory
	gate     *auth.Gate
	trail    *audit.Trail
}

func NewService(repo Repository, patients PatientDirectory, gate *auth.Gate, trail *audit.Trail) *Service {
	return &Service{repo: repo, patients: patients, gate: gate, trail: trail}
}

// Create validates and persists a new invoice for an existing patient,
// returning the assigned identity. The creation timestamp is assigned here
// when the caller did not construct one.
func (s *Service) Create(ctx context.Context, caller auth.Identity, inv *Invoice) (int64, error) {
	if err := s.gate.Authorize(ctx, caller, createRoles, "invoice.create"); err != nil {
		return 0, err
	}
	if err := inv.Validate(); err != nil {
		return 0, err
	}
	ok, err := s.patients.Exists(ctx, inv.PatientID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.Validation("patient %d not found", inv.PatientID)
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	id, err := s.repo.Create(ctx, inv)
	if err != nil {
		s.trail.Error(ctx, caller.Name, string(caller.Role), "invoice.create", err.Error())
		return 0, err
	}
	inv.ID = id
	s.trail.Success(ctx, caller.Name, string(caller.Role), "invoice.create", id)
	return id, nil
}

// Get returns the invoice with the given identity, or nil when absent.
func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByPatient returns the patient's invoices, most recently created first.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Invoice, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
