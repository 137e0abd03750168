package medicationsparser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/logging"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// ErrDataLoad marks a failed dataset load: unreachable source or a file
// that could not be parsed at all. Callers report unhealthy instead of
// crashing.
var ErrDataLoad = errors.New("dataset load failed")

// Compile-time check to ensure MedicationsParser implements Parser
var _ interfaces.Parser = (*MedicationsParser)(nil)

// MedicationsParser loads the dataset from a local CSV path, optionally
// refreshing it from a download URL first.
type MedicationsParser struct {
	path string
	url  string
}

// NewMedicationsParser creates a parser for the given dataset source.
// With an empty url the local file at path is used as-is.
func NewMedicationsParser(path, url string) *MedicationsParser {
	return &MedicationsParser{path: path, url: url}
}

// ParseMedications implements the Parser interface
func (p *MedicationsParser) ParseMedications() ([]entities.Medication, error) {
	if p.url != "" {
		if err := downloadDataset(p.url, p.path); err != nil {
			// A stale local copy is better than no data at all
			if _, statErr := os.Stat(p.path); statErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
			}
			logging.Warn("Dataset download failed, using existing local copy",
				"error", err, "path", p.path)
		}
	}

	file, err := os.Open(filepath.Clean(p.path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrDataLoad, p.path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("Failed to close dataset file", "error", err)
		}
	}()

	medications, err := ConvertCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}

	logging.Info("Dataset parsed", "path", p.path, "medication_count", len(medications))
	return medications, nil
}
