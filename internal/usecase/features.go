package usecase

import (
	"math"
	"strings"
)

// Cost category boundaries (cost for two).
const (
	costLowUpper  = 300.0
	costHighLower = 700.0
)

// CostCategory buckets a cleaned cost into low/medium/high.
// The NaN branch is defensive; cleaning never produces one.
func CostCategory(cost float64) string {
	switch {
	case math.IsNaN(cost):
		return "medium"
	case cost < costLowUpper:
		return "low"
	case cost < costHighLower:
		return "medium"
	default:
		return "high"
	}
}

// PrimaryCuisine extracts the first cuisine token from a
// comma-separated cuisine list, trimmed and lowercased.
func PrimaryCuisine(cuisines string) string {
	first, _, _ := strings.Cut(cuisines, ",")
	first = strings.ToLower(strings.TrimSpace(first))
	if first == "" {
		return "unknown"
	}
	return first
}

// ClampRating normalizes a rating to the closed interval [1,5].
// Idempotent: clamping an already-clamped value changes nothing.
func ClampRating(rating float64) float64 {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
