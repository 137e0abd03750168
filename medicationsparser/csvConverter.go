// Package medicationsparser loads the medications dataset from a CSV
// source (local file or download) into Medication records.
package medicationsparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pharmassist/medications-api/logging"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// requiredColumns are expected in every dataset snapshot. A missing one
// is logged as a warning, not treated as fatal, because absent columns
// default to empty values for every record.
var requiredColumns = []string{"SN.", "Trade_Name", "Generic_Name", "Category", "Price"}

// sideEffectSlots is the number of Side_Effect_N columns in the source schema
const sideEffectSlots = 9

// columnMap resolves cleaned header names to their column position
type columnMap map[string]int

// cleanHeader trims whitespace and drops embedded newlines. The source
// spreadsheet exports "Strenght/\nConc." with a line break in the header.
func cleanHeader(header string) string {
	header = strings.ReplaceAll(header, "\n", "")
	header = strings.ReplaceAll(header, "\r", "")
	return strings.TrimSpace(header)
}

func buildColumnMap(headers []string) columnMap {
	cm := make(columnMap, len(headers))
	for i, header := range headers {
		cm[cleanHeader(header)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := cm[col]; !ok {
			logging.Warn("Required column not found in dataset", "column", col)
		}
	}

	return cm
}

// field returns the named column of a row, or "" when the column or the
// value is absent. Malformed rows degrade to blank fields, never errors.
func (cm columnMap) field(row []string, name string) string {
	idx, ok := cm[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parsePrice converts a raw price string to a number. Thousands commas
// are tolerated; anything else unparseable yields nil and the record is
// excluded from numeric statistics only.
func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}

	cleaned := strings.ReplaceAll(raw, ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	return &price
}

// ConvertCSV reads the dataset CSV and converts every row to a
// Medication record. Record ids are the zero-based row position as a
// string, stable for the lifetime of a loaded snapshot.
func ConvertCSV(r io.Reader) ([]entities.Medication, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows with missing trailing columns default to empty fields
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cm := buildColumnMap(headers)

	var medications []entities.Medication
	rowCount := 0
	skippedMalformedRows := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skippedMalformedRows++
			continue
		}
		rowCount++

		price := cm.field(row, "Price")

		med := entities.Medication{
			ID:           strconv.Itoa(len(medications)),
			SN:           cm.field(row, "SN."),
			TradeName:    cm.field(row, "Trade_Name"),
			Strength:     strengthField(cm, row),
			DosageForm:   cm.field(row, "Dosage_Form"),
			Quantity:     cm.field(row, "Quantity_of_Dosage_Form"),
			Price:        price,
			PriceNumeric: parsePrice(price),
			GenericName:  cm.field(row, "Generic_Name"),
			LocalImport:  cm.field(row, "Local/Import"),
			Category:     cm.field(row, "Category"),
			Indications:  cm.field(row, "Indications_for_Use"),
			SideEffects:  collectSideEffects(cm, row),
			ImageURL:     cm.field(row, "Image_URL"),
		}

		medications = append(medications, med)
	}

	if skippedMalformedRows > 0 {
		logging.Info("Dataset skip statistics",
			"malformed_rows", skippedMalformedRows,
			"total_rows", rowCount,
			"records_parsed", len(medications))
	}

	return medications, nil
}

// strengthField reads the strength column. The source schema misspells
// the header as "Strenght/Conc."; cleaned exports use "Strength".
func strengthField(cm columnMap, row []string) string {
	if v := cm.field(row, "Strenght/Conc."); v != "" {
		return v
	}
	return cm.field(row, "Strength")
}

// collectSideEffects compacts the Side_Effect_1..9 columns, keeping only
// the non-empty slots in order.
func collectSideEffects(cm columnMap, row []string) []string {
	var sideEffects []string
	for i := 1; i <= sideEffectSlots; i++ {
		if effect := cm.field(row, fmt.Sprintf("Side_Effect_%d", i)); effect != "" {
			sideEffects = append(sideEffects, effect)
		}
	}
	return sideEffects
}
