package validators

import "strings"

// SanitizeString trims surrounding whitespace and enforces a length cap so
// free-text queries stay bounded before they reach the pipeline.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
