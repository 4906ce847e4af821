package billing

import "context"

type Repository interface {
	// Create inserts inv and returns the store-assigned identity.
	Create(ctx context.Context, inv *Invoice) (int64, error)
	// GetByID returns the invoice, or (nil, nil) when no row matches.
	GetByID(ctx context.Context, id int64) (*Invoice, error)
	// ListByPatient returns the patient's invoices, most recently
	// created first (identity descending).
	ListByPatient(ctx context.Context, patientID int64) ([]*Invoice, error)
}
