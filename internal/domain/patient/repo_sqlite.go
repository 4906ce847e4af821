package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

type repoSQLite struct {
	conn *sql.DB
}

func NewRepositorySQLite(conn *sql.DB) Repository {
	return &repoSQLite{conn: conn}
}

const patientCols = `id, name, age, gender, phone, disease, status`

func scanPatient(row *sql.Row) (*Patient, error) {
	var (
		p               Patient
		disease, status sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &disease, &status)
	if err != nil {
		return nil, err
	}
	p.Disease = disease.String
	p.Status = status.String
	return &p, nil
}

func (r *repoSQLite) Create(ctx context.Context, p *Patient) (int64, error) {
	res, err := r.conn.ExecContext(ctx, `
		INSERT INTO patients (name, age, gender, phone, disease, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Age, p.Gender, p.Phone, p.Disease, p.Status)
	if err != nil {
		return 0, apperr.Persistence("patient.create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Persistence("patient.create", err)
	}
	return id, nil
}

func (r *repoSQLite) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn.ExecContext(ctx, `
		UPDATE patients SET name = ?, age = ?, gender = ?, phone = ?, disease = ?, status = ?
		WHERE id = ?`,
		p.Name, p.Age, p.Gender, p.Phone, p.Disease, p.Status, p.ID)
	if err != nil {
		return apperr.Persistence("patient.update", err)
	}
	return nil
}

func (r *repoSQLite) GetByID(ctx context.Context, id int64) (*Patient, error) {
	p, err := scanPatient(r.conn.QueryRowContext(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Persistence("patient.get", err)
	}
	return p, nil
}

func (r *repoSQLite) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+patientCols+` FROM patients ORDER BY id DESC`)
	if err != nil {
		return nil, apperr.Persistence("patient.list", err)
	}
	defer rows.Close()

	items := []*Patient{}
	for rows.Next() {
		var (
			p               Patient
			disease, status sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &disease, &status); err != nil {
			return nil, apperr.Persistence("patient.list", err)
		}
		p.Disease = disease.String
		p.Status = status.String
		items = append(items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("patient.list", err)
	}
	return items, nil
}

func (r *repoSQLite) Delete(ctx context.Context, id int64) error {
	_, err := r.conn.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return apperr.Persistence("patient.delete", err)
	}
	return nil
}

func (r *repoSQLite) FieldValues(ctx context.Context, column string) ([]FieldValue, error) {
	switch column {
	case "disease", "status", "name":
	default:
		return nil, apperr.Persistence("patient.search", fmt.Errorf("unknown column %q", column))
	}

	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, name, `+column+` FROM patients`)
	if err != nil {
		return nil, apperr.Persistence("patient.search", err)
	}
	defer rows.Close()

	var values []FieldValue
	for rows.Next() {
		var (
			fv    FieldValue
			value sql.NullString
		)
		if err := rows.Scan(&fv.ID, &fv.Name, &value); err != nil {
			return nil, apperr.Persistence("patient.search", err)
		}
		fv.Value = value.String
		values = append(values, fv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("patient.search", err)
	}
	return values, nil
}
