package qa

import (
	"regexp"
	"strings"
)

// conditionTemplates are tried in order; the first template that matches
// wins. Each captures the free-text condition phrase after the trigger.
var conditionTemplates = []*regexp.Regexp{
	regexp.MustCompile(`medications? for ([\w\s]+)`),
	regexp.MustCompile(`drugs? for ([\w\s]+)`),
	regexp.MustCompile(`medicine for ([\w\s]+)`),
	regexp.MustCompile(`treatment for ([\w\s]+)`),
	regexp.MustCompile(`cure for ([\w\s]+)`),
	regexp.MustCompile(`remedy for ([\w\s]+)`),
	regexp.MustCompile(`what (?:treats|cures|helps with) ([\w\s]+)`),
}

// ExtractCondition pulls a condition phrase like "headache" out of
// normalized text of the form "medications for headache". The second
// return value is false when no template matched.
func ExtractCondition(normalizedText string) (string, bool) {
	for _, template := range conditionTemplates {
		if match := template.FindStringSubmatch(normalizedText); match != nil {
			return strings.TrimSpace(match[1]), true
		}
	}
	return "", false
}
