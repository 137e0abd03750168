package qa

import "strings"

// Intent labels the kind of information a question asks for.
type Intent string

const (
	IntentSideEffects  Intent = "side_effects"
	IntentPrice        Intent = "price"
	IntentUsage        Intent = "usage"
	IntentDosage       Intent = "dosage"
	IntentCategory     Intent = "category"
	IntentComparison   Intent = "comparison"
	IntentAvailability Intent = "availability"
	IntentStorage      Intent = "storage"
	IntentInteraction  Intent = "interaction"
	IntentPregnancy    Intent = "pregnancy"
	IntentGeneralInfo  Intent = "general_info"
)

// intentTable maps each label to its trigger patterns. The slice order is
// the tie-break order: when two labels reach the same match count, the
// one declared first wins. Patterns are written in normalized form (see
// Normalize), which is why "whats" has no apostrophe.
var intentTable = []struct {
	label    Intent
	patterns []string
}{
	{IntentSideEffects, []string{
		"side effect", "adverse", "reaction", "negative", "bad effect",
		"harmful", "danger", "risk", "warning",
	}},
	{IntentPrice, []string{
		"price", "cost", "how much", "expensive", "cheap", "afford",
	}},
	{IntentUsage, []string{
		"use", "treat", "for", "indication", "what is", "whats",
		"help with", "cure", "heal", "remedy", "therapy", "treatment",
	}},
	{IntentDosage, []string{
		"dose", "dosage", "how much", "how many", "take", "frequency",
		"daily", "times a day", "administration", "how to take",
	}},
	{IntentCategory, []string{
		"category", "type", "class", "group", "similar to", "classification",
	}},
	{IntentComparison, []string{
		"compare", "versus", "vs", "difference", "better", "worse",
		"alternative", "substitute", "replacement",
	}},
	{IntentAvailability, []string{
		"available", "find", "get", "buy", "purchase", "obtain",
		"where can i", "pharmacy", "store", "online",
	}},
	{IntentStorage, []string{
		"store", "keep", "refrigerate", "temperature", "shelf life",
		"expiration", "expire", "stability",
	}},
	{IntentInteraction, []string{
		"interact", "interaction", "together with", "combine", "mix",
		"along with", "simultaneously", "conflict",
	}},
	{IntentPregnancy, []string{
		"pregnancy", "pregnant", "breastfeeding", "nursing", "lactation",
		"expecting", "trimester",
	}},
}

// ClassifyIntent scores every label by how many of its patterns appear in
// the normalized text, one count per pattern. Single-word patterns match
// whole words only; multi-word phrases match as substrings. The highest
// count wins with ties broken by declaration order, and general_info is
// returned when nothing matches at all.
func ClassifyIntent(normalizedText string) Intent {
	wordSet := make(map[string]struct{})
	for _, word := range strings.Fields(normalizedText) {
		wordSet[word] = struct{}{}
	}

	best := IntentGeneralInfo
	bestCount := 0

	for _, entry := range intentTable {
		count := 0
		for _, pattern := range entry.patterns {
			if matchesPattern(normalizedText, wordSet, pattern) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = entry.label
		}
	}

	return best
}

func matchesPattern(text string, wordSet map[string]struct{}, pattern string) bool {
	if strings.Contains(pattern, " ") {
		return strings.Contains(text, pattern)
	}
	_, ok := wordSet[pattern]
	return ok
}
