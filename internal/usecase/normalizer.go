package usecase

import (
	"log"
	"strings"

	"github.com/platefinder/backend/internal/domain"
)

// Canonical field names, in the order they are reported.
const (
	fieldName     = "name"
	fieldLocation = "location"
	fieldRating   = "rating"
	fieldCost     = "cost"
	fieldCuisines = "cuisines"
	fieldVotes    = "votes"
)

var canonicalFields = []string{fieldName, fieldLocation, fieldRating, fieldCost, fieldCuisines, fieldVotes}

// columnAliases maps each canonical field to the known source column
// names for it. Order defines precedence: the first alias found in the
// source wins.
var columnAliases = map[string][]string{
	fieldName:     {"Restaurant Name", "restaurant_name", "name"},
	fieldLocation: {"City", "Locality", "Locality Verbose", "Address", "location"},
	fieldRating:   {"Aggregate rating", "rate", "rating", "Rating"},
	fieldCost:     {"Average Cost for two", "cost_for_two", "approx_cost", "cost", "average_cost"},
	fieldCuisines: {"Cuisines", "cuisine", "Cuisine"},
	fieldVotes:    {"Votes", "votes", "vote_count"},
}

// irrelevantColumns are known noise columns dropped when present.
// Removing them is a size reduction, not correctness-critical.
var irrelevantColumns = map[string]bool{
	"Restaurant ID":        true,
	"Country Code":         true,
	"Currency":             true,
	"Has Table booking":    true,
	"Has Online delivery":  true,
	"Is delivering now":    true,
	"Switch to order menu": true,
	"Price range":          true,
	"Rating color":         true,
	"Rating text":          true,
}

// NormalizedTable is the output of schema normalization: rows keyed by
// canonical field names only, plus the presence flags for the canonical
// columns that actually existed in the source.
type NormalizedTable struct {
	Columns domain.ColumnSet
	Rows    []domain.RawRecord
}

// Normalizer maps heterogeneous source column names onto the canonical
// schema and records which canonical fields the source lacked.
type Normalizer struct {
	enableDebugLogging bool
}

// NewNormalizer creates a new schema normalizer
func NewNormalizer(enableDebugLogging bool) *Normalizer {
	return &Normalizer{enableDebugLogging: enableDebugLogging}
}

// Normalize resolves each canonical field against the alias table,
// renames the first match found, and drops known-irrelevant columns.
// Canonical fields with no matching alias are reported as missing in
// the SchemaReport; that is a warning for the caller, never an error.
func (n *Normalizer) Normalize(table *domain.RawTable) (*NormalizedTable, domain.SchemaReport) {
	report := domain.SchemaReport{SourceColumns: append([]string(nil), table.Columns...)}

	// Resolve canonical field -> winning source column.
	mapping := make(map[string]string, len(canonicalFields))
	available := make(map[string]bool, len(table.Columns))
	for _, col := range table.Columns {
		available[col] = true
	}

	for _, field := range canonicalFields {
		found := ""
		for _, alias := range columnAliases[field] {
			if available[alias] {
				found = alias
				break
			}
		}
		if found == "" {
			report.MissingFields = append(report.MissingFields, field)
			continue
		}
		mapping[field] = found
		if n.enableDebugLogging {
			log.Printf("[NORMALIZE] %s <- %q", field, found)
		}
	}

	if report.HasMissing() {
		log.Printf("[NORMALIZE] %s", report.Warning())
	}
	if n.enableDebugLogging {
		for col := range available {
			if irrelevantColumns[col] {
				log.Printf("[NORMALIZE] dropping irrelevant column %q", col)
			}
		}
	}

	out := &NormalizedTable{
		Columns: domain.ColumnSet{
			Name:     mapping[fieldName] != "",
			Location: mapping[fieldLocation] != "",
			Rating:   mapping[fieldRating] != "",
			Cost:     mapping[fieldCost] != "",
			Cuisines: mapping[fieldCuisines] != "",
			Votes:    mapping[fieldVotes] != "",
		},
		Rows: make([]domain.RawRecord, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		normalized := make(domain.RawRecord, len(mapping))
		for field, source := range mapping {
			normalized[field] = row[source]
		}
		out.Rows = append(out.Rows, normalized)
	}

	return out, report
}

// isMissing reports whether a normalized cell holds no usable value.
func isMissing(value string) bool {
	return strings.TrimSpace(value) == ""
}
