package data

import (
	"testing"

	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

func floatPtr(v float64) *float64 { return &v }

func TestSearch(t *testing.T) {
	ms := newTestStore()

	tests := []struct {
		name     string
		term     string
		category string
		limit    int
		wantIDs  []string
	}{
		{"no filters returns all in order", "", "", 0, []string{"0", "1", "2", "3"}},
		{"limit truncates", "", "", 2, []string{"0", "1"}},
		{"term matches trade name", "panadol", "", 0, []string{"0"}},
		{"term matches generic name", "paracetamol", "", 0, []string{"0", "2"}},
		{"term matches indications", "cholesterol", "", 0, []string{"1"}},
		{"term is case-insensitive substring", "LIPI", "", 0, []string{"1"}},
		{"category filter is exact", "", "Analgesic", 0, []string{"0", "2"}},
		{"category filter is case-sensitive", "", "analgesic", 0, nil},
		{"term and category combined", "adol", "Analgesic", 0, []string{"0", "2"}},
		{"no matches", "nosuchdrug", "", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := ms.Search(tt.term, tt.category, tt.limit)
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("expected %d results, got %d", len(tt.wantIDs), len(results))
			}
			for i, id := range tt.wantIDs {
				if results[i].ID != id {
					t.Errorf("expected id %s at %d, got %s", id, i, results[i].ID)
				}
			}
		})
	}
}

func TestAdvancedSearch(t *testing.T) {
	ms := newTestStore()

	tests := []struct {
		name     string
		criteria entities.SearchCriteria
		wantIDs  []string
	}{
		{"empty criteria returns all", entities.SearchCriteria{}, []string{"0", "1", "2", "3"}},
		{"trade name substring", entities.SearchCriteria{TradeName: "adol"}, []string{"0", "2"}},
		{"generic name substring", entities.SearchCriteria{GenericName: "cetirizine"}, []string{"3"}},
		{"exact category", entities.SearchCriteria{Category: "Statin"}, []string{"1"}},
		{
			"inclusive price range excludes unparseable prices",
			entities.SearchCriteria{MinPrice: floatPtr(5.50), MaxPrice: floatPtr(12.00)},
			[]string{"0", "3"},
		},
		{"min price alone", entities.SearchCriteria{MinPrice: floatPtr(20)}, []string{"1"}},
		{"indication substring", entities.SearchCriteria{Indication: "pain"}, []string{"0", "2"}},
		{
			"criteria are conjunctive",
			entities.SearchCriteria{GenericName: "paracetamol", MaxPrice: floatPtr(10)},
			[]string{"0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := ms.AdvancedSearch(tt.criteria)
			if len(results) != len(tt.wantIDs) {
				t.Fatalf("expected %d results, got %d", len(tt.wantIDs), len(results))
			}
			for i, id := range tt.wantIDs {
				if results[i].ID != id {
					t.Errorf("expected id %s at %d, got %s", id, i, results[i].ID)
				}
			}
		})
	}
}

func TestStatistics(t *testing.T) {
	ms := newTestStore()

	stats := ms.Statistics()

	if stats.TotalMedications != 4 {
		t.Errorf("expected 4 medications, got %d", stats.TotalMedications)
	}
	if stats.TotalCategories != 2 {
		t.Errorf("expected 2 categories, got %d", stats.TotalCategories)
	}
	if stats.CategoriesDist["Analgesic"] != 2 {
		t.Errorf("expected 2 analgesics, got %d", stats.CategoriesDist["Analgesic"])
	}
	if stats.CategoriesDist[""] != 1 {
		t.Errorf("expected 1 record in the blank category bucket, got %d", stats.CategoriesDist[""])
	}

	distTotal := 0
	for _, count := range stats.CategoriesDist {
		distTotal += count
	}
	if distTotal != stats.TotalMedications {
		t.Errorf("category distribution sums to %d, want %d", distTotal, stats.TotalMedications)
	}

	prices := stats.PriceStatistics
	if prices.Count != 3 {
		t.Errorf("expected 3 priced records, got %d", prices.Count)
	}
	if prices.Min != 5.50 || prices.Max != 25.00 {
		t.Errorf("expected min 5.50 max 25.00, got %f and %f", prices.Min, prices.Max)
	}
	if prices.Median != 12.00 {
		t.Errorf("expected median 12.00, got %f", prices.Median)
	}
}

func TestSummarizePrices(t *testing.T) {
	tests := []struct {
		name       string
		prices     []float64
		wantMedian float64
		wantMean   float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4}, 4, 4},
		{"odd count", []float64{3, 1, 2}, 2, 2},
		{"even count averages middle pair", []float64{4, 1, 3, 2}, 2.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarizePrices(tt.prices)
			if got.Median != tt.wantMedian {
				t.Errorf("expected median %f, got %f", tt.wantMedian, got.Median)
			}
			if got.Mean != tt.wantMean {
				t.Errorf("expected mean %f, got %f", tt.wantMean, got.Mean)
			}
			if got.Count != len(tt.prices) {
				t.Errorf("expected count %d, got %d", len(tt.prices), got.Count)
			}
		})
	}
}
