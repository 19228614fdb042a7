package usecase

import (
	"math"
	"testing"
)

func TestCostCategory(t *testing.T) {
	tests := []struct {
		name string
		cost float64
		want string
	}{
		{"just below low boundary", 299.99, "low"},
		{"exact low boundary", 300, "medium"},
		{"just below high boundary", 699.99, "medium"},
		{"exact high boundary", 700, "high"},
		{"zero cost", 0, "low"},
		{"very high cost", 5000, "high"},
		{"NaN falls back to medium", math.NaN(), "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CostCategory(tt.cost); got != tt.want {
				t.Errorf("CostCategory(%v) = %q, want %q", tt.cost, got, tt.want)
			}
		})
	}

	t.Run("deterministic for equal inputs", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			if got := CostCategory(450); got != "medium" {
				t.Fatalf("CostCategory(450) = %q, want medium", got)
			}
		}
	})
}

func TestPrimaryCuisine(t *testing.T) {
	tests := []struct {
		name     string
		cuisines string
		want     string
	}{
		{"single cuisine", "italian", "italian"},
		{"takes first token", "north indian, chinese, continental", "north indian"},
		{"trims and lowercases", "  Thai , Mexican", "thai"},
		{"empty input", "", "unknown"},
		{"leading comma", ", chinese", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrimaryCuisine(tt.cuisines); got != tt.want {
				t.Errorf("PrimaryCuisine(%q) = %q, want %q", tt.cuisines, got, tt.want)
			}
		})
	}
}

func TestClampRating(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		want   float64
	}{
		{"below range", 0.5, 1},
		{"above range", 6.2, 5},
		{"in range", 4.3, 4.3},
		{"lower bound", 1, 1},
		{"upper bound", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampRating(tt.rating); got != tt.want {
				t.Errorf("ClampRating(%v) = %v, want %v", tt.rating, got, tt.want)
			}
		})
	}

	t.Run("idempotent under re-clamping", func(t *testing.T) {
		for _, rating := range []float64{-2, 0, 1, 3.7, 5, 9} {
			once := ClampRating(rating)
			if twice := ClampRating(once); twice != once {
				t.Errorf("ClampRating(ClampRating(%v)) = %v, want %v", rating, twice, once)
			}
		}
	})
}
