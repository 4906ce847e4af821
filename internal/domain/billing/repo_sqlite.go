package billing

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

type repoSQLite struct {
	conn *sql.DB
}

func NewRepositorySQLite(conn *sql.DB) Repository {
	return &repoSQLite{conn: conn}
}

const invoiceCols = `id, patient_id, consultation_fee, medicines_total, tax_pct, created_at`

func (r *repoSQLite) Create(ctx context.Context, inv *Invoice) (int64, error) {
	res, err := r.conn.ExecContext(ctx, `
		INSERT INTO invoices (patient_id, consultation_fee, medicines_total, tax_pct, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		inv.PatientID, inv.ConsultationFee, inv.MedicinesTotal, inv.TaxPct,
		inv.CreatedAt.Format(CreatedAtLayout))
	if err != nil {
		return 0, apperr.Persistence("invoice.create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Persistence("invoice.create", err)
	}
	return id, nil
}

func (r *repoSQLite) GetByID(ctx context.Context, id int64) (*Invoice, error) {
	var (
		inv       Invoice
		createdAt string
	)
	err := r.conn.QueryRowContext(ctx,
		`SELECT `+invoiceCols+` FROM invoices WHERE id = ?`, id).
		Scan(&inv.ID, &inv.PatientID, &inv.ConsultationFee, &inv.MedicinesTotal, &inv.TaxPct, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Persistence("invoice.get", err)
	}
	inv.CreatedAt, err = time.ParseInLocation(CreatedAtLayout, createdAt, time.Local)
	if err != nil {
		return nil, apperr.Persistence("invoice.get", err)
	}
	return &inv, nil
}

func (r *repoSQLite) ListByPatient(ctx context.Context, patientID int64) ([]*Invoice, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT `+invoiceCols+` FROM invoices WHERE patient_id = ?
		ORDER BY id DESC`, patientID)
	if err != nil {
		return nil, apperr.Persistence("invoice.list", err)
	}
	defer rows.Close()

	items := []*Invoice{}
	for rows.Next() {
		var (
			inv       Invoice
			createdAt string
		)
		if err := rows.Scan(&inv.ID, &inv.PatientID, &inv.ConsultationFee, &inv.MedicinesTotal, &inv.TaxPct, &createdAt); err != nil {
			return nil, apperr.Persistence("invoice.list", err)
		}
		inv.CreatedAt, err = time.ParseInLocation(CreatedAtLayout, createdAt, time.Local)
		if err != nil {
			return nil, apperr.Persistence("invoice.list", err)
		}
		items = append(items, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("invoice.list", err)
	}
	return items, nil
}
