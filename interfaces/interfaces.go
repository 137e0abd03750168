// Package interfaces defines core abstractions for the medications API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"time"

	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// DataQualityReport provides a summary of data quality issues
type DataQualityReport struct {
	DuplicateIDs       []string
	BlankTradeNames    int
	BlankCategories    int
	BlankIndications   int
	UnparseablePrices  int
	DuplicateTradeKeys []string // lowercased trade names shared by several records
}

// DataStore defines the contract for medication data storage.
// It provides thread-safe access to the loaded dataset with atomic
// snapshot swaps for zero-downtime reloads.
type DataStore interface {
	// Record access
	GetMedications() []entities.Medication
	GetMedicationsMap() map[string]entities.Medication
	GetMedicationByID(id string) (entities.Medication, bool)
	GetMedicationByName(name string) (entities.Medication, bool)
	GetCategories() []string

	// Name indexes used by the question-analysis pipeline. The name slices
	// preserve dataset row order so extraction order stays deterministic.
	GetTradeNames() []string
	GetTradeNameIndex() map[string]string
	GetGenericNames() []string
	GetGenericNameIndex() map[string][]string

	// Query operations
	Search(term, category string, limit int) []entities.Medication
	AdvancedSearch(criteria entities.SearchCriteria) []entities.Medication
	Statistics() entities.Statistics

	// Lifecycle
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time
	SetServerStartTime(startTime time.Time)
	UpdateData(medications []entities.Medication)
	BeginUpdate() bool
	EndUpdate()
}

// Parser defines the contract for loading medication data from the
// dataset source (local CSV file or remote URL).
type Parser interface {
	ParseMedications() ([]entities.Medication, error)
}

// Answerer defines the contract for the question-answering pipeline.
// Implementations analyze a raw question string against the medication
// table and render a plain-text answer.
type Answerer interface {
	Answer(question string) string
}

// Scheduler defines the contract for job scheduling and health monitoring.
// It manages automated data reloads and system health checks.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	HealthCheck() (status string, details map[string]any, httpStatus int)
}

// DataValidator defines the contract for input and data validation.
type DataValidator interface {
	// ValidateID validates a medication id path parameter
	ValidateID(input string) error

	// ValidateSearchTerm validates user-supplied search strings
	ValidateSearchTerm(input string) error

	// ValidateQuestion validates the question body of an answer request
	ValidateQuestion(input string) error

	// ReportDataQuality generates a data quality report for a parsed dataset
	ReportDataQuality(medications []entities.Medication) *DataQualityReport
}
