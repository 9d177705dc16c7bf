// Package normalize cleans raw OCR output before scoring and extraction.
package normalize

import (
	"regexp"
	"strings"
)

var reCRLF = regexp.MustCompile(`\r\n?`)

// Garbled financial terms seen in OCR output. Applied everywhere; these
// letter sequences do not occur in legitimate text.
var termFixes = strings.NewReplacer(
	"lnvoice", "Invoice",
	"lnv", "Inv",
	"TotaI", "Total",
)

// Runs of digits and digit-confusable letters. A run is only rewritten when
// it already contains a digit, which keeps the fix away from ordinary words.
// Inside such runs the substitution is still a best-effort heuristic and can
// over-correct codes that legitimately mix letters and digits.
var reDigitRun = regexp.MustCompile(`[0-9OlIS]+`)

var confusionFixes = strings.NewReplacer(
	"O", "0",
	"l", "1",
	"I", "1",
	"S", "5",
)

// Clean trims lines, collapses blank-line runs to a single blank line, and
// applies the OCR substitution table. Pure and idempotent; empty input
// returns empty output.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = reCRLF.ReplaceAllString(text, "\n")

	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		} else if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
			// keep one blank line for paragraph structure
			cleaned = append(cleaned, "")
		}
	}
	text = strings.Join(cleaned, "\n")

	text = termFixes.Replace(text)
	text = reDigitRun.ReplaceAllStringFunc(text, func(run string) string {
		if !strings.ContainsAny(run, "0123456789") {
			return run
		}
		return confusionFixes.Replace(run)
	})

	return strings.TrimSpace(text)
}
