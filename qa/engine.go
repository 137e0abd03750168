package qa

import (
	"strings"

	"github.com/pharmassist/medications-api/interfaces"
	"github.com/pharmassist/medications-api/logging"
	"github.com/pharmassist/medications-api/medicationsparser/entities"
	"github.com/pharmassist/medications-api/metrics"
)

// Compile-time check to ensure Engine implements Answerer
var _ interfaces.Answerer = (*Engine)(nil)

// Analysis is the per-question result of running all extractors. It is
// built fresh for every question and discarded after the answer is
// rendered.
type Analysis struct {
	Medications []entities.Medication `json:"medications"`
	Intent      Intent                `json:"intent"`
	Condition   string                `json:"condition,omitempty"`
	Keywords    []string              `json:"keywords"`
}

// Engine answers free-text questions against a medication data store.
type Engine struct {
	store interfaces.DataStore
}

// NewEngine creates a new question-answering engine
func NewEngine(store interfaces.DataStore) *Engine {
	return &Engine{store: store}
}

// Analyze runs the normalizer and the three extractors over a raw
// question and returns their combined output.
func (e *Engine) Analyze(question string) Analysis {
	normalized := Normalize(question)
	condition, _ := ExtractCondition(normalized)

	return Analysis{
		Medications: ExtractMedications(normalized, e.store),
		Intent:      ClassifyIntent(normalized),
		Condition:   condition,
		Keywords:    Keywords(question),
	}
}

// Answer produces a plain-text answer for a question. Dispatch order:
// a recognized medication wins, then a condition phrase, then the two
// fixed-topic answers (storage, generic vs brand), then the default help
// message. Within the medication branch the intent picks the template.
func (e *Engine) Answer(question string) string {
	analysis := e.Analyze(question)

	logging.Debug("Question analysis",
		"intent", string(analysis.Intent),
		"medications", len(analysis.Medications),
		"condition", analysis.Condition)
	metrics.QuestionsAnswered.WithLabelValues(string(analysis.Intent)).Inc()

	if len(analysis.Medications) > 0 {
		med := analysis.Medications[0]

		switch analysis.Intent {
		case IntentSideEffects:
			return sideEffectsResponse(med)
		case IntentPrice:
			return priceResponse(med)
		case IntentUsage:
			return usageResponse(med)
		default:
			return generalInfoResponse(med)
		}
	}

	if analysis.Condition != "" {
		return conditionResponse(analysis.Condition, e.store)
	}

	// The fixed-topic checks look at the raw question, lowercased but not
	// normalized, matching the behavior the templates were written for.
	lowered := strings.ToLower(question)

	if strings.Contains(lowered, "store") &&
		(strings.Contains(lowered, "medication") || strings.Contains(lowered, "medicine")) {
		return storageResponse()
	}

	if strings.Contains(lowered, "generic") && strings.Contains(lowered, "brand") {
		return genericVsBrandResponse()
	}

	return DefaultResponse()
}
