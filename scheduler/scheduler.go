// Package scheduler provides automated dataset reloads and data health
// monitoring for the medications API. It runs the initial load, schedules
// a daily refresh with gocron, and coordinates reloads with the data
// store's atomic snapshot swap.
package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/logging"
	"github.com/pharmassist/medications-api/metrics"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles dataset reloads using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	validator interfaces.DataValidator
	reloadAt  string
	scheduler *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies.
// reloadAt is the daily reload time in HH:MM format.
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser,
	validator interfaces.DataValidator, reloadAt string) *Scheduler {
	return &Scheduler{
		dataStore: dataStore,
		parser:    parser,
		validator: validator,
		reloadAt:  reloadAt,
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial dataset load and schedules the daily
// reload. A failed initial load is returned to the caller but does not
// prevent scheduling: the health endpoint reports unhealthy until a
// later reload succeeds.
func (s *Scheduler) Start() error {
	var initialErr error
	if err := s.reload(); err != nil {
		logging.Error("Failed to perform initial data load", "error", err)
		initialErr = fmt.Errorf("initial data load failed: %w", err)
	}

	_, err := s.scheduler.Every(1).Days().At(s.reloadAt).Do(func() {
		if err := s.reload(); err != nil {
			logging.Error("Failed to reload dataset", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule dataset reloads", "error", err)
		return fmt.Errorf("failed to schedule dataset reloads: %w", err)
	}

	s.scheduler.StartAsync()
	s.startHealthMonitoring()

	return initialErr
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// reload parses the dataset into a fresh record list and publishes it
// with one atomic swap. In-flight requests keep reading the old snapshot
// until the swap happens.
func (s *Scheduler) reload() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	logging.Info("Starting dataset reload")
	start := time.Now()

	medications, err := s.parser.ParseMedications()
	if err != nil {
		return fmt.Errorf("failed to parse medications: %w", err)
	}

	report := s.validator.ReportDataQuality(medications)

	if len(report.DuplicateIDs) > 0 {
		logging.Warn("Duplicate record ids detected",
			"total", len(report.DuplicateIDs),
			"id_list", report.DuplicateIDs)
	}
	if len(report.DuplicateTradeKeys) > 0 {
		logging.Warn("Trade names shared by several records",
			"total", len(report.DuplicateTradeKeys))
	}
	if report.BlankTradeNames > 0 {
		logging.Warn("Records without a trade name", "count", report.BlankTradeNames)
	}
	if report.UnparseablePrices > 0 {
		logging.Info("Records with unparseable prices excluded from numeric statistics",
			"count", report.UnparseablePrices)
	}

	s.dataStore.UpdateData(medications)

	elapsed := time.Since(start)
	metrics.DatasetRecords.Set(float64(len(medications)))
	metrics.DatasetReloadDuration.Observe(elapsed.Seconds())
	logging.Info("Dataset reload completed",
		"duration", elapsed.String(),
		"medication_count", len(medications))

	return nil
}

// startHealthMonitoring warns when the dataset goes stale
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastUpdate := s.dataStore.GetLastUpdated()
			if time.Since(lastUpdate) > 25*time.Hour {
				logging.Warn("Dataset hasn't been reloaded in over 25 hours")
			}
		}
	}()
}
