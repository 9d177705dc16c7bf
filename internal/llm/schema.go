package llm

import "github.com/finwerk/docpipe/constants"

// JSON-Schema builders (draft 2020-12 subset) as generic maps. Each is passed
// to the model as a structured-output constraint and used locally to
// validate the response. Property names line up with the entity JSON tags.

// BuildClassificationSchema constrains the classifier to the closed
// category set.
func BuildClassificationSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"document_type": map[string]any{
				"type": "string",
				"enum": constants.CategoriesAsStringSlice(),
			},
		},
		"required": []string{"document_type"},
	}
}

// BuildInvoiceSchema describes the invoice record, with vat_category locked
// to the closed VAT box codes.
func BuildInvoiceSchema() map[string]any {
	transaction := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"description":    map[string]any{"type": "string", "minLength": 1},
			"amount_pre_vat": map[string]any{"type": "number"},
			"vat_percentage": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			"vat_category": map[string]any{
				"type": "string",
				"enum": constants.VATCodesAsStringSlice(),
			},
		},
		"required": []string{"description", "amount_pre_vat", "vat_percentage", "vat_category"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"invoice_no":   map[string]any{"type": "string", "minLength": 1},
			"date":         map[string]any{"type": "string"},
			"invoice_to":   map[string]any{"type": "string"},
			"country":      map[string]any{"type": "string"},
			"transactions": map[string]any{"type": "array", "items": transaction},
			"total_amount": map[string]any{"type": "number"},
		},
		"required": []string{"invoice_no", "date", "invoice_to", "country", "transactions", "total_amount"},
	}
}

// BuildBankStatementSchema describes the classified transaction list.
func BuildBankStatementSchema() map[string]any {
	classification := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"account_code": map[string]any{"type": "string", "minLength": 1},
			"account_name": map[string]any{"type": "string", "minLength": 1},
			"confidence":   map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"account_code", "account_name", "confidence"},
	}
	specialFlags := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"internal_transfer": map[string]any{"type": "boolean"},
			"recurring_payment": map[string]any{"type": "boolean"},
			"tax_related":       map[string]any{"type": "boolean"},
		},
	}
	transaction := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"transaction_id": map[string]any{"type": "string", "minLength": 1},
			"classification": classification,
			"special_flags":  specialFlags,
		},
		"required": []string{"transaction_id", "classification"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"transactions": map[string]any{"type": "array", "items": transaction},
		},
		"required": []string{"transactions"},
	}
}

// BuildGeneralDocumentSchema is the loose catch-all for tax documents,
// receipts, financial reports, and everything else.
func BuildGeneralDocumentSchema() map[string]any {
	keyAmount := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"label": map[string]any{"type": "string"},
			"value": map[string]any{"type": "string"},
		},
		"required": []string{"label", "value"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"document_title": map[string]any{"type": "string"},
			"document_date":  map[string]any{"type": "string"},
			"key_amounts":    map[string]any{"type": "array", "items": keyAmount},
			"key_entities":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"summary":        map[string]any{"type": "string"},
		},
		"required": []string{"document_title", "document_date", "key_amounts", "key_entities", "summary"},
	}
}
