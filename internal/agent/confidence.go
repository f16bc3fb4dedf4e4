package agent

import (
	"regexp"
	"strconv"
)

// Patterns are tried in order and the first match wins.
var confidencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Confidence:\s*(\d+)%`),
	regexp.MustCompile(`(?i)(\d+)%\s*confidence`),
	regexp.MustCompile(`(?i)Score:\s*(\d+)%`),
}

// extractConfidence pulls a self-reported confidence score out of generated
// text. A nil return means the text carries no score, which is not an error.
func extractConfidence(text string) *float64 {
	for _, pattern := range confidencePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		return &value
	}
	return nil
}
