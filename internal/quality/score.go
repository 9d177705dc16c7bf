// Package quality scores extracted text for downstream usability using
// lexical heuristics tuned for financial documents.
package quality

import (
	"regexp"
	"strings"
)

// Band labels a score for reporting.
type Band string

const (
	High   Band = "high"
	Medium Band = "medium"
	Low    Band = "low"
)

var financialKeywords = []string{
	"invoice", "total", "amount", "vat", "btw", "date", "payment", "receipt", "statement",
}

var currencyMarkers = []string{"€", "$", "£", "USD", "EUR", "GBP"}

var (
	reNumber = regexp.MustCompile(`\d+`)
	// anything outside word chars, whitespace, currency symbols, and common
	// punctuation counts as OCR noise
	reNoise = regexp.MustCompile(`[^\w\s€$£.,:;()\-]`)
)

// Score rates extracted text from 0 (unusable) to 100 (clean). It subtracts
// fixed penalties from a base of 100 and clamps the result. Pure function,
// no failure mode.
func Score(text string) int {
	if len(strings.TrimSpace(text)) < 10 {
		return 0
	}

	score := 100
	runes := []rune(text)

	if len(runes) < 50 {
		score -= 30
	}

	lower := strings.ToLower(text)
	found := 0
	for _, kw := range financialKeywords {
		if strings.Contains(lower, kw) {
			found++
		}
	}
	if found < 3 {
		score -= 20
	}

	if len(reNumber.FindAllString(text, -1)) < 3 {
		score -= 15
	}

	hasCurrency := false
	for _, marker := range currencyMarkers {
		if strings.Contains(text, marker) {
			hasCurrency = true
			break
		}
	}
	if !hasCurrency {
		score -= 10
	}

	noise := len(reNoise.FindAllString(text, -1))
	if float64(noise) > float64(len(runes))*0.10 {
		score -= 25
	}

	if hasRepeatedRun(runes, 4) {
		score -= 15
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// BandFor maps a score onto the reporting bands used for operator feedback.
func BandFor(score int) Band {
	switch {
	case score >= 80:
		return High
	case score >= 60:
		return Medium
	default:
		return Low
	}
}

// hasRepeatedRun reports whether any character repeats at least n times
// consecutively. Go's regexp has no backreferences, so this is a scan.
func hasRepeatedRun(runes []rune, n int) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == '\n' {
			run = 1
			continue
		}
		if runes[i] == runes[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
