package usecase

import (
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/platefinder/backend/internal/domain"
)

// Cleaning defaults. The sparsity threshold is configurable because it
// is a judgment call, not an algorithmic truth.
const (
	defaultMaxMissingRatio = 0.30
	defaultRating          = 3.0
	defaultFallbackCost    = 500.0
	defaultLocation        = "Unknown"
	defaultName            = "Unknown"
	defaultCuisines        = "unknown"
)

// CleanerConfig holds configuration for the data cleaner
type CleanerConfig struct {
	MaxMissingRatio    float64
	DefaultRating      float64
	FallbackCost       float64
	EnableDebugLogging bool
}

// Cleaner repairs per-row values after normalization: drops rows too
// sparse to trust, deduplicates, and coerces each field with a total
// default. No row is ever dropped for a single bad field.
type Cleaner struct {
	maxMissingRatio    float64
	defaultRating      float64
	fallbackCost       float64
	enableDebugLogging bool
}

// NewCleaner creates a new data cleaner with the given configuration
func NewCleaner(config CleanerConfig) *Cleaner {
	ratio := config.MaxMissingRatio
	if ratio <= 0 || ratio >= 1 {
		ratio = defaultMaxMissingRatio
	}

	rating := config.DefaultRating
	if rating <= 0 {
		rating = defaultRating
	}

	cost := config.FallbackCost
	if cost <= 0 {
		cost = defaultFallbackCost
	}

	return &Cleaner{
		maxMissingRatio:    ratio,
		defaultRating:      rating,
		fallbackCost:       cost,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Clean turns a normalized table into canonical restaurant records.
// Steps: sparsity drop, dedup on (name, location) when both columns
// exist, then independent total coercions per field, then derived
// features.
func (c *Cleaner) Clean(table *NormalizedTable) []domain.Restaurant {
	rows := c.dropSparseRows(table)
	rows = c.deduplicate(table.Columns, rows)

	medianCost := c.medianCost(table.Columns, rows)

	records := make([]domain.Restaurant, 0, len(rows))
	for _, row := range rows {
		r := domain.Restaurant{
			Name:     c.cleanText(table.Columns.Name, row[fieldName], defaultName),
			Location: c.cleanText(table.Columns.Location, row[fieldLocation], defaultLocation),
			Rating:   c.cleanRating(table.Columns.Rating, row[fieldRating]),
			Cost:     c.cleanCost(table.Columns.Cost, row[fieldCost], medianCost),
			Cuisines: c.cleanCuisines(table.Columns.Cuisines, row[fieldCuisines]),
			Votes:    c.cleanVotes(table.Columns.Votes, row[fieldVotes]),
		}

		r.CostCategory = CostCategory(r.Cost)
		r.PrimaryCuisine = PrimaryCuisine(r.Cuisines)
		r.NormalizedRating = ClampRating(r.Rating)

		records = append(records, r)
	}

	return records
}

// dropSparseRows removes rows where more than the configured ratio of
// the canonical columns present in the source are empty. Computed
// pre-defaulting: it protects against rows too corrupt to trust even
// after column mapping.
func (c *Cleaner) dropSparseRows(table *NormalizedTable) []domain.RawRecord {
	present := presentFields(table.Columns)
	if len(present) == 0 {
		return table.Rows
	}

	kept := make([]domain.RawRecord, 0, len(table.Rows))
	dropped := 0
	for _, row := range table.Rows {
		missing := 0
		for _, field := range present {
			if isMissing(row[field]) {
				missing++
			}
		}
		if float64(missing)/float64(len(present)) > c.maxMissingRatio {
			dropped++
			continue
		}
		kept = append(kept, row)
	}

	if dropped > 0 && c.enableDebugLogging {
		log.Printf("[CLEAN] dropped %d sparse rows (>%.0f%% missing)", dropped, c.maxMissingRatio*100)
	}
	return kept
}

// deduplicate keeps the first row per (name, location) pair. When
// either column is absent from the source there is no reliable key, so
// the table passes through untouched.
func (c *Cleaner) deduplicate(cols domain.ColumnSet, rows []domain.RawRecord) []domain.RawRecord {
	if !cols.Name || !cols.Location {
		return rows
	}

	seen := make(map[string]bool, len(rows))
	kept := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		key := row[fieldName] + "\x00" + row[fieldLocation]
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}

	if c.enableDebugLogging && len(kept) < len(rows) {
		log.Printf("[CLEAN] removed %d duplicate rows", len(rows)-len(kept))
	}
	return kept
}

// medianCost computes the dataset-wide median of successfully parsed
// costs, used to fill rows whose own cost is missing or unparsable.
// Falls back to the configured default when nothing parses.
func (c *Cleaner) medianCost(cols domain.ColumnSet, rows []domain.RawRecord) float64 {
	if !cols.Cost {
		return c.fallbackCost
	}

	costs := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, ok := parseCost(row[fieldCost]); ok {
			costs = append(costs, v)
		}
	}
	if len(costs) == 0 {
		return c.fallbackCost
	}

	sort.Float64s(costs)
	mid := len(costs) / 2
	if len(costs)%2 == 0 {
		return (costs[mid-1] + costs[mid]) / 2
	}
	return costs[mid]
}

func (c *Cleaner) cleanText(present bool, value, fallback string) string {
	if !present || isMissing(value) {
		return fallback
	}
	return strings.TrimSpace(value)
}

func (c *Cleaner) cleanRating(present bool, value string) float64 {
	if !present {
		return c.defaultRating
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return c.defaultRating
	}
	return v
}

func (c *Cleaner) cleanCost(present bool, value string, median float64) float64 {
	if !present {
		return c.fallbackCost
	}
	if v, ok := parseCost(value); ok {
		return v
	}
	return median
}

func (c *Cleaner) cleanCuisines(present bool, value string) string {
	if !present || isMissing(value) {
		return defaultCuisines
	}
	return strings.ToLower(strings.TrimSpace(value))
}

func (c *Cleaner) cleanVotes(present bool, value string) int {
	if !present {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

// parseCost parses a cost cell, tolerating thousands separators.
// Negative costs are treated as unparsable.
func parseCost(value string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func presentFields(cols domain.ColumnSet) []string {
	var fields []string
	if cols.Name {
		fields = append(fields, fieldName)
	}
	if cols.Location {
		fields = append(fields, fieldLocation)
	}
	if cols.Rating {
		fields = append(fields, fieldRating)
	}
	if cols.Cost {
		fields = append(fields, fieldCost)
	}
	if cols.Cuisines {
		fields = append(fields, fieldCuisines)
	}
	if cols.Votes {
		fields = append(fields, fieldVotes)
	}
	return fields
}
