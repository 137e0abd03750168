package qa

import (
	"strings"

	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
)

// ExtractMedications scans normalized question text for every known trade
// name, then every known generic name, and returns the matched records
// de-duplicated by id in first-seen order. A generic name shared by
// several trade-name records pulls in all of them.
//
// Names are normalized the same way as the question before comparing, so
// punctuation in a name ("Co-codamol", "Codeine/Paracetamol") still
// matches against question text whose punctuation was stripped.
//
// Matching is raw substring search, not word-boundary aware: a short name
// embedded in an unrelated word still matches. That is the documented
// contract of the extractor, kept on purpose so the answer set for
// ambiguous inputs stays stable.
func ExtractMedications(normalizedText string, store interfaces.DataStore) []entities.Medication {
	medicationsMap := store.GetMedicationsMap()
	tradeIndex := store.GetTradeNameIndex()
	genericIndex := store.GetGenericNameIndex()

	seen := make(map[string]struct{})
	found := make([]entities.Medication, 0)

	appendMatch := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		med, ok := medicationsMap[id]
		if !ok {
			return
		}
		seen[id] = struct{}{}
		found = append(found, med)
	}

	for _, name := range store.GetTradeNames() {
		needle := Normalize(name)
		if needle != "" && strings.Contains(normalizedText, needle) {
			appendMatch(tradeIndex[name])
		}
	}

	for _, name := range store.GetGenericNames() {
		needle := Normalize(name)
		if needle == "" || !strings.Contains(normalizedText, needle) {
			continue
		}
		for _, id := range genericIndex[name] {
			appendMatch(id)
		}
	}

	return found
}
