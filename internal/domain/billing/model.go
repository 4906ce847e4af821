// Package billing holds invoices: append-only billing records tied to an
// existing patient, with the payable total derived on demand.
package billing

import (
	"math"
	"strconv"
	"time"

	"github.com/meditrack/meditrack/internal/platform/apperr"
	"github.com/meditrack/meditrack/pkg/export"
)

// CreatedAtLayout is the stored form of an invoice's creation timestamp.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Invoice maps to the invoices table. CreatedAt is assigned once at
// construction and never mutated.
type Invoice struct {
	ID              int64     `db:"id" json:"id"`
	PatientID       int64     `db:"patient_id" json:"patient_id"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultation_fee"`
	MedicinesTotal  float64   `db:"medicines_total" json:"medicines_total"`
	TaxPct          float64   `db:"tax_pct" json:"tax_pct"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Total derives the payable amount: subtotal plus tax when includeTax is
// set, rounded to two decimals either way. Pure computation over already
// validated inputs.
func (inv *Invoice) Total(includeTax bool) float64 {
	subtotal := inv.ConsultationFee + inv.MedicinesTotal
	if includeTax {
		return round2(subtotal * (1 + inv.TaxPct/100))
	}
	return round2(subtotal)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Validate rejects malformed amounts before the invoice can reach the
// store. Fee and medicines must be finite and non-negative; Total assumes
// this has been enforced.
func (inv *Invoice) Validate() error {
	if inv.PatientID == 0 {
		return apperr.Validation("patient_id is required")
	}
	for name, v := range map[string]float64{
		"consultation_fee": inv.ConsultationFee,
		"medicines_total":  inv.MedicinesTotal,
		"tax_pct":          inv.TaxPct,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperr.Validation("%s must be a finite number", name)
		}
		if v < 0 {
			return apperr.Validation("%s must be non-negative", name)
		}
	}
	return nil
}

// ExportFields flattens the invoice into the field/value table used by the
// CSV export, including the derived total.
func (inv *Invoice) ExportFields() []export.Field {
	return []export.Field{
		{Name: "id", Value: strconv.FormatInt(inv.ID, 10)},
		{Name: "patient_id", Value: strconv.FormatInt(inv.PatientID, 10)},
		{Name: "consultation_fee", Value: strconv.FormatFloat(inv.ConsultationFee, 'f', 2, 64)},
		{Name: "medicines_total", Value: strconv.FormatFloat(inv.MedicinesTotal, 'f', 2, 64)},
		{Name: "tax_pct", Value: strconv.FormatFloat(inv.TaxPct, 'f', 2, 64)},
		{Name: "created_at", Value: inv.CreatedAt.Format(CreatedAtLayout)},
		{Name: "total", Value: strconv.FormatFloat(inv.Total(true), 'f', 2, 64)},
	}
}
