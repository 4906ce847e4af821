// Package export renders a single fetched record as a flat Field,Value CSV
// table. Pure formatting; no business logic.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Field is one name/value pair of the exported record.
type Field struct {
	Name  string
	Value string
}

// WriteRecord writes a header row followed by one row per field.
func WriteRecord(w io.Writer, fields []Field) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Field", "Value"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, f := range fields {
		if err := cw.Write([]string{f.Name, f.Value}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
