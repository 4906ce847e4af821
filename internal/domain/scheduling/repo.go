package scheduling

import "context"

type Repository interface {
	// Create inserts a and returns the store-assigned identity.
	Create(ctx context.Context, a *Appointment) (int64, error)
	// ListByPatient returns the patient's appointments, most recent
	// first (date descending, then time descending). An empty result is
	// an empty slice, not an error.
	ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error)
}
