// Package patient holds the patient record: the entity, its validation
// rules, the repository over the embedded store, and the pattern-based
// record search.
package patient

import (
	"regexp"

	"github.com/meditrack/meditrack/internal/platform/apperr"
)

const (
	StatusNew      = "New"
	StatusFollowUp = "Follow-up"
	StatusCritical = "Critical"
)

var validStatuses = map[string]bool{
	StatusNew: true, StatusFollowUp: true, StatusCritical: true,
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Patient maps to the patients table. ID is zero before persistence and
// assigned by the store on creation.
type Patient struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Age     int    `db:"age" json:"age"`
	Gender  string `db:"gender" json:"gender"`
	Phone   string `db:"phone" json:"phone"`
	Disease string `db:"disease" json:"disease"`
	Status  string `db:"status" json:"status"`
}

// Validate rejects malformed input before it can reach the store.
// An empty status defaults to New.
func (p *Patient) Validate() error {
	if p.Name == "" {
		return apperr.Validation("name is required")
	}
	if p.Age < 0 {
		return apperr.Validation("age must be a non-negative number")
	}
	if !phonePattern.MatchString(p.Phone) {
		return apperr.Validation("phone must be 10 digits")
	}
	if p.Status == "" {
		p.Status = StatusNew
	}
	if !validStatuses[p.Status] {
		return apperr.Validation("invalid status: %s", p.Status)
	}
	return nil
}
