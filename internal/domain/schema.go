package domain

import (
	"fmt"
	"strings"
)

// SchemaReport describes how the source schema mapped onto the
// canonical one. A non-empty MissingFields list is informational, not
// fatal: the pipeline proceeds with defaults.
type SchemaReport struct {
	MissingFields []string `json:"missingFields,omitempty"`
	SourceColumns []string `json:"sourceColumns"`
}

// HasMissing reports whether any canonical field had no source column.
func (r SchemaReport) HasMissing() bool {
	return len(r.MissingFields) > 0
}

// Warning renders the operator-facing schema warning, or "" when the
// source covered every canonical field.
func (r SchemaReport) Warning() string {
	if !r.HasMissing() {
		return ""
	}
	return fmt.Sprintf("missing columns: %s; using defaults where possible. Available columns: %s",
		strings.Join(r.MissingFields, ", "), strings.Join(r.SourceColumns, ", "))
}
