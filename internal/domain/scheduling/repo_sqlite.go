package scheduling

import (
	"context"
	"database/sql"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

type repoSQLite struct {
	conn *sql.DB
}

func NewRepositorySQLite(conn *sql.DB) Repository {
	return &repoSQLite{conn: conn}
}

func (r *repoSQLite) Create(ctx context.Context, a *Appointment) (int64, error) {
	res, err := r.conn.ExecContext(ctx, `
		INSERT INTO appointments (patient_id, doctor, date, time, notes)
		VALUES (?, ?, ?, ?, ?)`,
		a.PatientID, a.Doctor, a.Date, a.Time, a.Notes)
	if err != nil {
		return 0, apperr.Persistence("appointment.create", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperr.Persistence("appointment.create", err)
	}
	return id, nil
}

func (r *repoSQLite) ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	rows, err := r.conn.QueryContext(ctx, `
		SELECT id, patient_id, doctor, date, time, notes
		FROM appointments WHERE patient_id = ?
		ORDER BY date DESC, time DESC`, patientID)
	if err != nil {
		return nil, apperr.Persistence("appointment.list", err)
	}
	defer rows.Close()

	items := []*Appointment{}
	for rows.Next() {
		var (
			a     Appointment
			notes sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.PatientID, &a.Doctor, &a.Date, &a.Time, &notes); err != nil {
			return nil, apperr.Persistence("appointment.list", err)
		}
		a.Notes = notes.String
		items = append(items, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("appointment.list", err)
	}
	return items, nil
}
