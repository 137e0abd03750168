// Package health provides health checking functionality for the
// medications API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/pharmassist/medications-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore interfaces.DataStore
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{dataStore: dataStore}
}

// HealthCheck reports service health from the state of the data store.
// An empty table means the dataset never loaded: 503 and "unhealthy".
// Loaded but old data degrades the status without failing requests,
// since the table keeps serving.
func (h *HealthCheckerImpl) HealthCheck() (string, map[string]any, int) {
	medications := h.dataStore.GetMedications()
	categories := h.dataStore.GetCategories()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)

	var status string
	var httpStatus int
	switch {
	case len(medications) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case dataAge > 48*time.Hour:
		status = "degraded"
		httpStatus = http.StatusOK
	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	uptime := time.Since(h.dataStore.GetServerStartTime())

	data := map[string]any{
		"status":            status,
		"medications_count": len(medications),
		"categories_count":  len(categories),
		"last_update":       lastUpdate.Format(time.RFC3339),
		"data_age_hours":    math.Round(dataAge.Hours()*10) / 10,
		"uptime_seconds":    math.Round(uptime.Seconds()),
		"is_updating":       isUpdating,
	}

	return status, data, httpStatus
}
