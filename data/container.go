// Package data provides thread-safe storage for the medications dataset.
// A MedicationStore holds one immutable snapshot of the table plus its
// derived indexes; reloads build a fresh snapshot off to the side and
// publish it with a single atomic pointer swap, so concurrent readers
// always see either the fully-old or fully-new table.
package data

import (
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// Compile-time check to ensure MedicationStore implements DataStore
var _ interfaces.DataStore = (*MedicationStore)(nil)

// snapshot is the immutable view of a loaded dataset. Indexes are built
// once at load time and never mutated afterwards.
type snapshot struct {
	medications    []entities.Medication
	medicationsMap map[string]entities.Medication

	// Name slices keep dataset row order; the maps resolve a lowercased
	// name to record ids. A generic name may be shared by several trade
	// names, so its index maps to an ordered id list.
	tradeNames   []string
	tradeIndex   map[string]string
	genericNames []string
	genericIndex map[string][]string

	categories []string
}

// MedicationStore holds the current snapshot with an atomic pointer for
// zero-downtime reloads.
type MedicationStore struct {
	current         atomic.Value // *snapshot
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewMedicationStore creates a new MedicationStore with an empty snapshot
func NewMedicationStore() *MedicationStore {
	ms := &MedicationStore{}
	ms.current.Store(buildSnapshot(nil))
	ms.lastUpdated.Store(time.Time{})
	ms.serverStartTime.Store(time.Time{})
	return ms
}

// buildSnapshot derives all lookup indexes from a parsed record list.
// Rows with a blank trade or generic name are kept in the table but left
// out of the corresponding index; only the first record claims a trade
// name key while generic name keys collect every record sharing them.
func buildSnapshot(medications []entities.Medication) *snapshot {
	if medications == nil {
		medications = make([]entities.Medication, 0)
	}

	s := &snapshot{
		medications:    medications,
		medicationsMap: make(map[string]entities.Medication, len(medications)),
		tradeIndex:     make(map[string]string),
		genericIndex:   make(map[string][]string),
	}

	categorySet := make(map[string]struct{})

	for i := range medications {
		med := medications[i]
		s.medicationsMap[med.ID] = med

		if name := strings.ToLower(strings.TrimSpace(med.TradeName)); name != "" {
			if _, exists := s.tradeIndex[name]; !exists {
				s.tradeIndex[name] = med.ID
				s.tradeNames = append(s.tradeNames, name)
			}
		}

		if name := strings.ToLower(strings.TrimSpace(med.GenericName)); name != "" {
			if _, exists := s.genericIndex[name]; !exists {
				s.genericNames = append(s.genericNames, name)
			}
			s.genericIndex[name] = append(s.genericIndex[name], med.ID)
		}

		if med.Category != "" {
			categorySet[med.Category] = struct{}{}
		}
	}

	s.categories = make([]string, 0, len(categorySet))
	for category := range categorySet {
		s.categories = append(s.categories, category)
	}
	sort.Strings(s.categories)

	return s
}

// getSnapshot returns the current snapshot, never nil
func (ms *MedicationStore) getSnapshot() *snapshot {
	if v := ms.current.Load(); v != nil {
		if s, ok := v.(*snapshot); ok {
			return s
		}
	}
	return buildSnapshot(nil)
}

// GetMedications returns all records in dataset row order
func (ms *MedicationStore) GetMedications() []entities.Medication {
	return ms.getSnapshot().medications
}

// GetMedicationsMap returns the id map for O(1) lookups
func (ms *MedicationStore) GetMedicationsMap() map[string]entities.Medication {
	return ms.getSnapshot().medicationsMap
}

// GetMedicationByID returns the record with the given id
func (ms *MedicationStore) GetMedicationByID(id string) (entities.Medication, bool) {
	med, ok := ms.getSnapshot().medicationsMap[id]
	return med, ok
}

// GetMedicationByName resolves a trade or generic name, case-insensitive.
// The trade name index is checked first; a generic name shared by several
// records resolves to the one earliest in dataset order.
func (ms *MedicationStore) GetMedicationByName(name string) (entities.Medication, bool) {
	s := ms.getSnapshot()
	key := strings.ToLower(strings.TrimSpace(name))

	if id, ok := s.tradeIndex[key]; ok {
		med, found := s.medicationsMap[id]
		return med, found
	}

	if ids, ok := s.genericIndex[key]; ok && len(ids) > 0 {
		med, found := s.medicationsMap[ids[0]]
		return med, found
	}

	return entities.Medication{}, false
}

// GetCategories returns the sorted distinct non-empty category values
func (ms *MedicationStore) GetCategories() []string {
	return ms.getSnapshot().categories
}

// GetTradeNames returns lowercased trade names in dataset row order
func (ms *MedicationStore) GetTradeNames() []string {
	return ms.getSnapshot().tradeNames
}

// GetTradeNameIndex returns the lowercased trade name to id map
func (ms *MedicationStore) GetTradeNameIndex() map[string]string {
	return ms.getSnapshot().tradeIndex
}

// GetGenericNames returns lowercased generic names in dataset row order
func (ms *MedicationStore) GetGenericNames() []string {
	return ms.getSnapshot().genericNames
}

// GetGenericNameIndex returns the lowercased generic name to id list map
func (ms *MedicationStore) GetGenericNameIndex() map[string][]string {
	return ms.getSnapshot().genericIndex
}

// GetLastUpdated returns the timestamp of the last data load
func (ms *MedicationStore) GetLastUpdated() time.Time {
	if v := ms.lastUpdated.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// IsUpdating returns true if a data reload is currently in progress
func (ms *MedicationStore) IsUpdating() bool {
	return ms.updating.Load()
}

// SetServerStartTime sets the server start time
func (ms *MedicationStore) SetServerStartTime(startTime time.Time) {
	ms.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (ms *MedicationStore) GetServerStartTime() time.Time {
	if v := ms.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// UpdateData builds a new snapshot from the given records and publishes
// it atomically (zero downtime replacement)
func (ms *MedicationStore) UpdateData(medications []entities.Medication) {
	ms.current.Store(buildSnapshot(medications))
	ms.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a data reload.
// Returns true if the reload can proceed, false if another is in progress.
func (ms *MedicationStore) BeginUpdate() bool {
	return ms.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a data reload
func (ms *MedicationStore) EndUpdate() {
	ms.updating.Store(false)
}
