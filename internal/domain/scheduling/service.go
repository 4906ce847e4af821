package scheduling

import (
	"context"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/internal/platform/audit"
	"github.com/meditrack/meditrack/internal/platform/auth"
)

// createRoles is the fixed allowed-role set for appointment creation.
var createRoles = []auth.Role{auth.RoleAdmin, auth.RoleReceptionist, auth.RoleDoctor}

// PatientDirectory answers whether a patient identity exists. The service
// pre-checks existence before inserting; the store's foreign key is the
// second line of defense.
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

// Create validates and persists a new appointment for an existing patient,
// returning the assigned identity.
func (s *Service) Create(ctx context.Context, caller auth.Identity, a *Appointment) (int64, error) {
	if err := s.gate.Authorize(ctx, caller, createRoles, "appointment.create"); err != nil {
		return 0, err
	}
	if err := a.Validate(); err != nil {
		return 0, err
	}
	ok, err := s.patients.Exists(ctx, a.PatientID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, apperr.Validation("patient %d not found", a.PatientID)
	}
	id, err := s.repo.Create(ctx, a)
	if err != nil {
		s.trail.Error(ctx, caller.Name, string(caller.Role), "appointment.create", err.Error())
		return 0, err
	}
	a.ID = id
	s.trail.Success(ctx, caller.Name, string(caller.Role), "appointment.create", id)
	return id, nil
}

// ListByPatient returns the patient's appointments, most recent first.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}
