package patient

import "context"

// FieldValue is one row of the search projection: a patient's identity,
// name, and the text value of the searched column.
type FieldValue struct {
	ID    int64
	Name  string
	Value string
}

type Repository interface {
	// Create inserts p and returns the store-assigned identity.
	Create(ctx context.Context, p *Patient) (int64, error)
	// Update rewrites the row identified by p.ID.
	Update(ctx context.Context, p *Patient) error
	// GetByID returns the patient, or (nil, nil) when no row matches.
	GetByID(ctx context.Context, id int64) (*Patient, error)
	// List returns all patients, most recently created first.
	List(ctx context.Context) ([]*Patient, error)
	// Delete removes the patient; the store cascades the delete to its
	// appointments and invoices. Not exposed at the service boundary.
	Delete(ctx context.Context, id int64) error
	// FieldValues loads (id, name, column value) for every patient.
	// column must be one of disease, status, name.
	FieldValues(ctx context.Context, column string) ([]FieldValue, error)
}
