package data

import (
	"sort"
	"strings"

	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// Search filters records by a free-text term and/or an exact category.
// With both filters empty every record is returned in dataset order. The
// category filter is exact and case-sensitive; the term filter keeps
// records whose trade name, generic name, category or indications contain
// the term, case-insensitive. A positive limit truncates the final list
// to its first limit elements; there is no relevance ranking.
func (ms *MedicationStore) Search(term, category string, limit int) []entities.Medication {
	s := ms.getSnapshot()

	results := s.medications
	if category != "" {
		filtered := make([]entities.Medication, 0)
		for _, med := range results {
			if med.Category == category {
				filtered = append(filtered, med)
			}
		}
		results = filtered
	}

	if term != "" {
		term = strings.ToLower(term)
		filtered := make([]entities.Medication, 0)
		for _, med := range results {
			if strings.Contains(strings.ToLower(med.TradeName), term) ||
				strings.Contains(strings.ToLower(med.GenericName), term) ||
				strings.Contains(strings.ToLower(med.Category), term) ||
				strings.Contains(strings.ToLower(med.Indications), term) {
				filtered = append(filtered, med)
			}
		}
		results = filtered
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results
}

// AdvancedSearch applies the set criteria conjunctively. Omitted criteria
// are not applied. The price range is inclusive and only matches records
// whose price parsed to a number.
func (ms *MedicationStore) AdvancedSearch(criteria entities.SearchCriteria) []entities.Medication {
	s := ms.getSnapshot()

	results := make([]entities.Medication, 0)
	for _, med := range s.medications {
		if !matchesCriteria(med, criteria) {
			continue
		}
		results = append(results, med)
	}

	return results
}

func matchesCriteria(med entities.Medication, criteria entities.SearchCriteria) bool {
	if criteria.TradeName != "" &&
		!strings.Contains(strings.ToLower(med.TradeName), strings.ToLower(criteria.TradeName)) {
		return false
	}

	if criteria.GenericName != "" &&
		!strings.Contains(strings.ToLower(med.GenericName), strings.ToLower(criteria.GenericName)) {
		return false
	}

	if criteria.Category != "" && med.Category != criteria.Category {
		return false
	}

	if criteria.MinPrice != nil {
		if med.PriceNumeric == nil || *med.PriceNumeric < *criteria.MinPrice {
			return false
		}
	}

	if criteria.MaxPrice != nil {
		if med.PriceNumeric == nil || *med.PriceNumeric > *criteria.MaxPrice {
			return false
		}
	}

	if criteria.Indication != "" &&
		!strings.Contains(strings.ToLower(med.Indications), strings.ToLower(criteria.Indication)) {
		return false
	}

	return true
}

// Statistics summarizes the current snapshot. Records with unparseable
// prices are excluded from the price summary only.
func (ms *MedicationStore) Statistics() entities.Statistics {
	s := ms.getSnapshot()

	stats := entities.Statistics{
		TotalMedications: len(s.medications),
		TotalCategories:  len(s.categories),
		CategoriesDist:   make(map[string]int),
		DosageFormsDist:  make(map[string]int),
		LocalImportDist:  make(map[string]int),
	}

	prices := make([]float64, 0, len(s.medications))
	for _, med := range s.medications {
		if med.PriceNumeric != nil {
			prices = append(prices, *med.PriceNumeric)
		}
		// Blank values count as their own bucket so the distributions
		// always sum to the record total.
		stats.CategoriesDist[med.Category]++
		stats.DosageFormsDist[med.DosageForm]++
		stats.LocalImportDist[med.LocalImport]++
	}

	stats.PriceStatistics = summarizePrices(prices)
	return stats
}

func summarizePrices(prices []float64) entities.PriceStatistics {
	if len(prices) == 0 {
		return entities.PriceStatistics{}
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	sum := 0.0
	for _, p := range sorted {
		sum += p
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}

	return entities.PriceStatistics{
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
		Median: median,
		Count:  len(sorted),
	}
}
