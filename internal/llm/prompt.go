package llm

import "strings"

// Prompt builders for the classify-then-specialize pipeline. User prompts
// carry the raw document text; system prompts carry the extraction contract.

const maxPromptChars = 16000

// ClassifierSystemPrompt instructs the model to pick exactly one label from
// the closed category set, with lexical cues per category.
func ClassifierSystemPrompt() string {
	return strings.Join([]string{
		"You are an expert financial document classifier.",
		"Analyze the text and classify it into exactly one of these categories:",
		"- invoice: Bills, invoices, sales documents with line items and totals",
		"- bank_statement: Bank account statements with transactions and balances",
		"- tax_document: Tax returns, VAT returns, tax forms, BTW documents",
		"- receipt: Purchase receipts, payment confirmations",
		"- financial_report: Financial statements, profit/loss, balance sheets",
		"- other: Any other financial or business document",
		"Look for keywords like: invoice, bill, statement, tax, VAT, BTW, receipt, payment, transaction, balance.",
		"Return ONLY JSON matching the provided schema.",
	}, "\n")
}

// InvoiceSystemPrompt carries the VAT reporting contract: the closed code
// set with its semantics, and the recipient-country rule.
func InvoiceSystemPrompt() string {
	return strings.Join([]string{
		"You are an AI assistant that extracts structured invoice data for VAT reporting from raw text.",
		"Extract the 'country' as the country of the client (invoice recipient), not the issuer.",
		"For each transaction, assign a 'vat_category' using ONLY these codes:",
		"1a -> Domestic sales taxed at 21%",
		"1c -> Sales with 0% VAT to EU countries or exports",
		"4b -> Services purchased from EU countries",
		"Return ONLY JSON matching the provided schema.",
	}, "\n")
}

// BankStatementSystemPrompt gives two illustrative account rules as few-shot
// guidance; the model generalizes beyond them.
func BankStatementSystemPrompt() string {
	return strings.Join([]string{
		"You are an AI accounting expert. From the raw text of a bank statement,",
		"extract each transaction and classify it. The business is a software consultancy.",
		"- Payments to software companies are 'Kantoorkosten' (account code 4500).",
		"- Payments from clients are 'Omzet Diensten' (account code 8010).",
		"Give every transaction a unique transaction_id and a classification confidence between 0 and 1.",
		"Return ONLY JSON matching the provided schema.",
	}, "\n")
}

// GeneralDocumentSystemPrompt is the open-ended catch-all summary contract.
func GeneralDocumentSystemPrompt() string {
	return strings.Join([]string{
		"You are an AI assistant that extracts structured data from financial documents.",
		"Analyze the document and extract the title, date, important amounts,",
		"key entities (names, companies), and a brief summary.",
		"Return ONLY JSON matching the provided schema.",
	}, "\n")
}

// BuildUserPrompt packages the raw document text, truncated so one noisy
// scan cannot blow the context window.
func BuildUserPrompt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars] + "\n…(truncated)"
	}
	return "Here is the document text:\n\n```\n" + text + "\n```"
}
