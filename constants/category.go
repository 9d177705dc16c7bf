package constants

import "strings"

// DocumentCategory is the closed label set the classifier may emit.
type DocumentCategory string

const (
	Invoice         DocumentCategory = "invoice"
	BankStatement   DocumentCategory = "bank_statement"
	TaxDocument     DocumentCategory = "tax_document"
	Receipt         DocumentCategory = "receipt"
	FinancialReport DocumentCategory = "financial_report"
	Other           DocumentCategory = "other"
)

var allCategories = []DocumentCategory{
	Invoice,
	BankStatement,
	TaxDocument,
	Receipt,
	FinancialReport,
	Other,
}

// AllCategories returns the closed category set in declaration order.
func AllCategories() []DocumentCategory {
	out := make([]DocumentCategory, len(allCategories))
	copy(out, allCategories)
	return out
}

func CategoriesAsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// ParseCategory maps a model label onto the closed set. A label outside the
// set is a contract violation from the model, so ok=false — never coerced.
func ParseCategory(input string) (DocumentCategory, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, cat := range allCategories {
		if normalized == string(cat) {
			return cat, true
		}
	}
	return "", false
}
