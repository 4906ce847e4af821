// Package scheduling holds appointments: append-only visit records tied to
// an existing patient.
package scheduling

import (
	"regexp"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Appointment maps to the appointments table. Appointments are never
// updated or deleted through the service; they disappear only when their
// patient is deleted (cascade at the store level).
type Appointment struct {
	ID        int64  `db:"id" json:"id"`
	PatientID int64  `db:"patient_id" json:"patient_id"`
	Doctor    string `db:"doctor" json:"doctor"`
	Date      string `db:"date" json:"date"`
	Time      string `db:"time" json:"time"`
	Notes     string `db:"notes" json:"notes"`
}

// Validate rejects malformed input before it can reach the store.
// Date is YYYY-MM-DD and time is HH:MM so that the stored text orders
// chronologically.
func (a *Appointment) Validate() error {
	if a.PatientID == 0 {
		return apperr.Validation("patient_id is required")
	}
	if a.Doctor == "" {
		return apperr.Validation("doctor is required")
	}
	if !datePattern.MatchString(a.Date) {
		return apperr.Validation("date must be YYYY-MM-DD")
	}
	if !timePattern.MatchString(a.Time) {
		return apperr.Validation("time must be HH:MM")
	}
	return nil
}
