package entity

import "github.com/finwerk/docpipe/constants"

// ExtractionResult is the output of the hybrid extraction gateway:
// the text pulled from one source document plus its quality score.
// Immutable once produced.
type ExtractionResult struct {
	SourceName   string `json:"source_name"`
	RawText      string `json:"raw_text"`
	QualityScore int    `json:"quality_score"` // 0..100
}

// InvoiceTransaction is one line item on an invoice.
type InvoiceTransaction struct {
	Description   string                    `json:"description"`
	AmountPreVAT  float64                   `json:"amount_pre_vat"`
	VATPercentage int                       `json:"vat_percentage"`
	VATCategory   constants.VATCategoryCode `json:"vat_category"`
}

// InvoiceRecord is the structured shape extracted from invoice text.
// TotalAmount should be derivable from the line amounts plus VAT; the
// extractor does not enforce that — downstream validation owns it.
type InvoiceRecord struct {
	InvoiceNo    string               `json:"invoice_no"`
	Date         string               `json:"date"`
	InvoiceTo    string               `json:"invoice_to"`
	Country      string               `json:"country"`
	Transactions []InvoiceTransaction `json:"transactions"`
	TotalAmount  float64              `json:"total_amount"`
}

// TransactionClassification is the account assignment for one bank transaction.
type TransactionClassification struct {
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	Confidence  float64 `json:"confidence"` // 0..1
}

// SpecialFlags mark transactions that need bookkeeping attention.
type SpecialFlags struct {
	InternalTransfer bool `json:"internal_transfer"`
	RecurringPayment bool `json:"recurring_payment"`
	TaxRelated       bool `json:"tax_related"`
}

// BankTransaction is one classified statement line.
type BankTransaction struct {
	TransactionID  string                    `json:"transaction_id"`
	Classification TransactionClassification `json:"classification"`
	SpecialFlags   SpecialFlags              `json:"special_flags"`
}

// KeyAmount is a loosely-typed labeled amount found in a general document.
type KeyAmount struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GeneralDocumentRecord is the catch-all schema for tax documents,
// receipts, financial reports, and anything else.
type GeneralDocumentRecord struct {
	DocumentTitle string      `json:"document_title"`
	DocumentDate  string      `json:"document_date"`
	KeyAmounts    []KeyAmount `json:"key_amounts"`
	KeyEntities   []string    `json:"key_entities"`
	Summary       string      `json:"summary"`
}

// TabularResult is the pass-through artifact for spreadsheet uploads.
// All-empty rows are removed and missing cells normalized to "" so every
// row has the same width. It bypasses classification entirely.
type TabularResult struct {
	SheetName string     `json:"sheet_name"`
	Rows      [][]string `json:"rows"`
}

// Document is the tagged union produced by the orchestrator: exactly one
// payload field is set, selected by Category.
type Document struct {
	Category         constants.DocumentCategory `json:"category"`
	Invoice          *InvoiceRecord             `json:"invoice,omitempty"`
	BankTransactions []BankTransaction          `json:"bank_transactions,omitempty"`
	General          *GeneralDocumentRecord     `json:"general,omitempty"`
}
