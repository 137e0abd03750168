// Package qa implements the question-analysis and answer-generation
// pipeline for the medications API. A raw question is normalized, then
// scanned for medication names, an intent label and a condition phrase,
// and the combined analysis is rendered into a plain-text answer from a
// fixed set of templates. Matching is plain substring and regex work
// against the loaded table; there is no scoring or language model.
package qa

import (
	"strings"
	"unicode"
)

// asciiPunctuation is the punctuation set stripped by Normalize.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// commonWords are skipped by Keywords. The set mirrors the stopwords the
// analysis was tuned with; keywords are informational only and never feed
// into answer generation.
var commonWords = map[string]struct{}{
	"what": {}, "is": {}, "are": {}, "the": {}, "for": {}, "of": {},
	"and": {}, "to": {}, "in": {}, "with": {}, "can": {}, "i": {},
	"my": {}, "me": {}, "about": {}, "tell": {}, "how": {}, "much": {},
	"does": {}, "cost": {}, "a": {}, "an": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "it": {}, "they": {}, "them": {},
	"use": {}, "used": {}, "using": {}, "take": {}, "taking": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "did": {}, "should": {},
	"would": {}, "could": {}, "will": {}, "shall": {},
}

// Normalize lowercases text, strips ASCII punctuation and collapses all
// whitespace runs to single spaces. It is a pure function and idempotent,
// so every extractor can safely re-normalize its input.
func Normalize(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))

	lastWasSpace := true // also trims leading whitespace
	for _, r := range text {
		if r < 128 && strings.ContainsRune(asciiPunctuation, r) {
			continue
		}
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteByte(' ')
				lastWasSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
	}

	return strings.TrimRight(b.String(), " ")
}

// Keywords returns the normalized words of text minus the common-word
// set, preserving their order of appearance.
func Keywords(text string) []string {
	words := strings.Fields(Normalize(text))

	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if _, skip := commonWords[word]; skip {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}
