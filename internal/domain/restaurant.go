package domain

// RawRecord is a single source row as column name -> raw cell value.
// The source schema is unknown at compile time; width and column names
// vary by input file.
type RawRecord map[string]string

// RawTable is the parsed tabular source before any normalization.
type RawTable struct {
	Columns []string
	Rows    []RawRecord
}

// ColumnSet records which canonical columns actually existed in the
// source. Presence is computed once at normalization time; downstream
// stages branch on these flags instead of re-probing the data.
type ColumnSet struct {
	Name     bool `json:"name"`
	Location bool `json:"location"`
	Rating   bool `json:"rating"`
	Cost     bool `json:"cost"`
	Cuisines bool `json:"cuisines"`
	Votes    bool `json:"votes"`
}

// Restaurant is a cleaned canonical record. Every field is populated
// after cleaning (defaults guarantee totality); the derived fields are
// computed from the cleaned values and used only for filtering/ranking.
type Restaurant struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
	Cost     float64 `json:"cost"`
	Cuisines string  `json:"cuisines"`
	Votes    int     `json:"votes"`

	CostCategory     string  `json:"costCategory"`
	PrimaryCuisine   string  `json:"primaryCuisine"`
	NormalizedRating float64 `json:"normalizedRating"`
}

// Recommendation is a ranked restaurant with its score and a
// human-readable explanation. Both exist only within a single ranking
// invocation; the underlying Restaurant is never mutated.
type Recommendation struct {
	Restaurant
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Criteria are the user-supplied filter and ranking preferences.
type Criteria struct {
	Cuisines []string `json:"cuisines"`
	Budget   string   `json:"budget"`
	Location string   `json:"location"`
	Strategy Strategy `json:"strategy"`
	TopN     int      `json:"topN"`
}

// FilteredSet is the subset of records that passed the filter stage,
// prior to scoring. Callers hold it (via an opaque handle) and pass it
// back for re-ranking under a different strategy without recomputing
// the filters.
type FilteredSet struct {
	Records  []Restaurant `json:"records"`
	Columns  ColumnSet    `json:"columns"`
	Criteria Criteria     `json:"criteria"`
}
