package usecase

import (
	"testing"

	"github.com/platefinder/backend/internal/domain"
)

func allColumns() domain.ColumnSet {
	return domain.ColumnSet{Name: true, Location: true, Rating: true, Cost: true, Cuisines: true, Votes: true}
}

func TestClean_Totality(t *testing.T) {
	c := NewCleaner(CleanerConfig{})

	table := &NormalizedTable{
		Columns: allColumns(),
		Rows: []domain.RawRecord{
			{"name": "Cafe Amudham", "location": "Bangalore", "rating": "not-a-number", "cost": "garbage", "cuisines": "  South Indian ", "votes": "-5"},
			{"name": "Meghana Foods", "location": "Bangalore", "rating": "4.4", "cost": "1,200", "cuisines": "Biryani, Andhra", "votes": "12000"},
		},
	}

	records := c.Clean(table)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	for _, r := range records {
		if r.Name == "" || r.Location == "" || r.Cuisines == "" {
			t.Errorf("record %+v has empty canonical field", r)
		}
		if r.NormalizedRating < 1 || r.NormalizedRating > 5 {
			t.Errorf("NormalizedRating = %v, want in [1,5]", r.NormalizedRating)
		}
		if r.Cost < 0 {
			t.Errorf("Cost = %v, want >= 0", r.Cost)
		}
		if r.Votes < 0 {
			t.Errorf("Votes = %v, want >= 0", r.Votes)
		}
	}

	bad := records[0]
	if bad.Rating != 3.0 {
		t.Errorf("unparsable rating = %v, want default 3.0", bad.Rating)
	}
	if bad.Cost != 1200 {
		t.Errorf("unparsable cost = %v, want median 1200", bad.Cost)
	}
	if bad.Cuisines != "south indian" {
		t.Errorf("cuisines = %q, want lowercased and trimmed", bad.Cuisines)
	}
	if bad.Votes != 0 {
		t.Errorf("negative votes = %d, want 0", bad.Votes)
	}

	good := records[1]
	if good.Cost != 1200 {
		t.Errorf("cost with thousands separator = %v, want 1200", good.Cost)
	}
	if good.PrimaryCuisine != "biryani" {
		t.Errorf("PrimaryCuisine = %q, want biryani", good.PrimaryCuisine)
	}
	if good.CostCategory != "high" {
		t.Errorf("CostCategory = %q, want high", good.CostCategory)
	}
}

func TestClean_SparsityDrop(t *testing.T) {
	c := NewCleaner(CleanerConfig{MaxMissingRatio: 0.30})

	// Six canonical columns present: 2 missing fields is 33%, over the
	// threshold; 1 missing is under it.
	table := &NormalizedTable{
		Columns: allColumns(),
		Rows: []domain.RawRecord{
			{"name": "Kept", "location": "Bangalore", "rating": "4.0", "cost": "400", "cuisines": "", "votes": "10"},
			{"name": "Dropped", "location": "Bangalore", "rating": "", "cost": "", "cuisines": "thai", "votes": "10"},
		},
	}

	records := c.Clean(table)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0].Name != "Kept" {
		t.Errorf("surviving record = %q, want Kept", records[0].Name)
	}
	// The kept row's missing cuisine cell is defaulted, not dropped.
	if records[0].Cuisines != "unknown" {
		t.Errorf("Cuisines = %q, want unknown", records[0].Cuisines)
	}
}

func TestClean_Deduplication(t *testing.T) {
	c := NewCleaner(CleanerConfig{})

	t.Run("keeps first of identical (name, location) pairs", func(t *testing.T) {
		table := &NormalizedTable{
			Columns: allColumns(),
			Rows: []domain.RawRecord{
				{"name": "Empire", "location": "Koramangala", "rating": "4.0", "cost": "500", "cuisines": "mughlai", "votes": "100"},
				{"name": "Empire", "location": "Koramangala", "rating": "3.1", "cost": "600", "cuisines": "arabian", "votes": "7"},
				{"name": "Empire", "location": "Indiranagar", "rating": "4.2", "cost": "500", "cuisines": "mughlai", "votes": "300"},
			},
		}

		records := c.Clean(table)
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, want 2", len(records))
		}
		if records[0].Rating != 4.0 {
			t.Errorf("kept record rating = %v, want 4.0 (first occurrence)", records[0].Rating)
		}
	})

	t.Run("no dedup when location column absent", func(t *testing.T) {
		table := &NormalizedTable{
			Columns: domain.ColumnSet{Name: true, Rating: true},
			Rows: []domain.RawRecord{
				{"name": "Empire", "rating": "4.0"},
				{"name": "Empire", "rating": "3.1"},
			},
		}

		records := c.Clean(table)
		if len(records) != 2 {
			t.Fatalf("len(records) = %d, want 2 (no dedup key)", len(records))
		}
	})
}

func TestClean_CostMedian(t *testing.T) {
	t.Run("even count uses midpoint of middle pair", func(t *testing.T) {
		c := NewCleaner(CleanerConfig{})
		table := &NormalizedTable{
			Columns: domain.ColumnSet{Cost: true},
			Rows: []domain.RawRecord{
				{"cost": "100"},
				{"cost": "200"},
				{"cost": "400"},
				{"cost": "800"},
				{"cost": "nope"},
			},
		}

		records := c.Clean(table)
		if records[4].Cost != 300 {
			t.Errorf("filled cost = %v, want median 300", records[4].Cost)
		}
	})

	t.Run("no parsable costs falls back to configured default", func(t *testing.T) {
		c := NewCleaner(CleanerConfig{FallbackCost: 500})
		table := &NormalizedTable{
			Columns: domain.ColumnSet{Cost: true},
			Rows:    []domain.RawRecord{{"cost": "abc"}, {"cost": "xyz"}},
		}

		records := c.Clean(table)
		for _, r := range records {
			if r.Cost != 500 {
				t.Errorf("Cost = %v, want fallback 500", r.Cost)
			}
		}
	})

	t.Run("cost column absent defaults every row", func(t *testing.T) {
		c := NewCleaner(CleanerConfig{})
		table := &NormalizedTable{
			Columns: domain.ColumnSet{Name: true},
			Rows:    []domain.RawRecord{{"name": "X"}},
		}

		records := c.Clean(table)
		if records[0].Cost != 500 {
			t.Errorf("Cost = %v, want 500", records[0].Cost)
		}
		if records[0].CostCategory != "medium" {
			t.Errorf("CostCategory = %q, want medium", records[0].CostCategory)
		}
	})
}

func TestClean_MissingColumnDefaults(t *testing.T) {
	c := NewCleaner(CleanerConfig{})

	// Only a name column: everything else defaults.
	table := &NormalizedTable{
		Columns: domain.ColumnSet{Name: true},
		Rows:    []domain.RawRecord{{"name": "Lone Star"}},
	}

	records := c.Clean(table)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.Location != "Unknown" {
		t.Errorf("Location = %q, want Unknown", r.Location)
	}
	if r.Rating != 3.0 {
		t.Errorf("Rating = %v, want 3.0", r.Rating)
	}
	if r.Cuisines != "unknown" {
		t.Errorf("Cuisines = %q, want unknown", r.Cuisines)
	}
	if r.PrimaryCuisine != "unknown" {
		t.Errorf("PrimaryCuisine = %q, want unknown", r.PrimaryCuisine)
	}
	if r.Votes != 0 {
		t.Errorf("Votes = %d, want 0", r.Votes)
	}
}

func TestNewCleaner_Defaults(t *testing.T) {
	c := NewCleaner(CleanerConfig{MaxMissingRatio: -1, DefaultRating: 0, FallbackCost: 0})
	if c.maxMissingRatio != 0.30 {
		t.Errorf("maxMissingRatio = %v, want 0.30 (default)", c.maxMissingRatio)
	}
	if c.defaultRating != 3.0 {
		t.Errorf("defaultRating = %v, want 3.0 (default)", c.defaultRating)
	}
	if c.fallbackCost != 500 {
		t.Errorf("fallbackCost = %v, want 500 (default)", c.fallbackCost)
	}
}
