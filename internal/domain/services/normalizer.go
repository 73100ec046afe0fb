package services

import (
	"strings"
)

// AnalysisText is the combined submission text in both raw and lower-cased
// form. Raw preserves case for sentiment analysis; Lowered feeds keyword
// matching. It is derived per request and never persisted.
type AnalysisText struct {
	Raw     string
	Lowered string
}

// NormalizeText concatenates the narrative, the IOC field, and any
// OCR-extracted text into one analysis string. Empty sources are skipped
// so absent OCR text does not leave trailing separators.
func NormalizeText(narrative, iocIndicators, ocrText string) AnalysisText {
	parts := make([]string, 0, 3)
	for _, p := range []string{narrative, iocIndicators, ocrText} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	raw := strings.Join(parts, " ")
	return AnalysisText{
		Raw:     raw,
		Lowered: strings.ToLower(raw),
	}
}

// UrgencyScore computes the caller-side urgency signal used by the hybrid
// classifier cascade: 15 when the narrative carries pressure wording,
// otherwise 0.
func UrgencyScore(narrative string) int {
	lowered := strings.ToLower(narrative)
	for _, word := range []string{"urgent", "immediately", "now"} {
		if strings.Contains(lowered, word) {
			return 15
		}
	}
	return 0
}
