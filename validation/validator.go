// Package validation provides input and data validation for the
// medications API.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// Dangerous patterns checked as plain substrings; strings.Contains is
// much faster than regex for these.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"onclick=", "eval(", "expression(", "@import",
	"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
	"../", "..\\", "%2e%2e", "file://",
	"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:",
}

const (
	maxSearchTermLength = 200
	maxQuestionLength   = 2000
)

// Compile-time check to ensure DataValidatorImpl implements DataValidator
var _ interfaces.DataValidator = (*DataValidatorImpl)(nil)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidatorImpl {
	return &DataValidatorImpl{}
}

// ValidateID validates a medication id path parameter. Record ids are
// row positions rendered as strings, so anything non-numeric is invalid.
func (v *DataValidatorImpl) ValidateID(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("id cannot be empty")
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return fmt.Errorf("id must be numeric, got: %s", input)
	}
	if n < 0 {
		return fmt.Errorf("id cannot be negative: %d", n)
	}

	return nil
}

// ValidateSearchTerm validates a user-supplied search term
func (v *DataValidatorImpl) ValidateSearchTerm(input string) error {
	if len(input) > maxSearchTermLength {
		return fmt.Errorf("search term too long: %d characters (max %d)", len(input), maxSearchTermLength)
	}

	return checkDangerousContent(input)
}

// ValidateQuestion validates the question body of an answer request.
// An empty question is rejected before it enters the analysis pipeline.
func (v *DataValidatorImpl) ValidateQuestion(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("question cannot be empty")
	}

	if len(input) > maxQuestionLength {
		return fmt.Errorf("question too long: %d characters (max %d)", len(input), maxQuestionLength)
	}

	return checkDangerousContent(input)
}

func checkDangerousContent(input string) error {
	lowered := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains disallowed content")
		}
	}
	return nil
}

// ReportDataQuality generates a data quality report for a parsed
// dataset. Issues are reported, never fixed: the table keeps malformed
// rows with blank fields by contract.
func (v *DataValidatorImpl) ReportDataQuality(medications []entities.Medication) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{}

	idCount := make(map[string]int)
	tradeKeyCount := make(map[string]int)

	for _, med := range medications {
		idCount[med.ID]++

		if strings.TrimSpace(med.TradeName) == "" {
			report.BlankTradeNames++
		} else {
			tradeKeyCount[strings.ToLower(med.TradeName)]++
		}

		if med.Category == "" {
			report.BlankCategories++
		}
		if med.Indications == "" {
			report.BlankIndications++
		}
		if med.Price != "" && med.PriceNumeric == nil {
			report.UnparseablePrices++
		}
	}

	for id, count := range idCount {
		if count > 1 {
			report.DuplicateIDs = append(report.DuplicateIDs, id)
		}
	}

	for key, count := range tradeKeyCount {
		if count > 1 {
			report.DuplicateTradeKeys = append(report.DuplicateTradeKeys, key)
		}
	}

	return report
}
