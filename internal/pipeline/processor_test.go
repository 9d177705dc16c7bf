package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwerk/docpipe/constants"
	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/llm"
)

// fakeGen returns canned JSON per schema name, skipping the network and the
// model entirely.
type fakeGen struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeGen) GenerateStructured(_ context.Context, req llm.GenerateRequest) ([]byte, error) {
	f.calls = append(f.calls, req.SchemaName)
	if err, ok := f.errs[req.SchemaName]; ok {
		return nil, err
	}
	resp, ok := f.responses[req.SchemaName]
	if !ok {
		return nil, fmt.Errorf("no canned response for schema %q", req.SchemaName)
	}
	return []byte(resp), nil
}

const invoicePayload = `{
	"invoice_no": "123",
	"date": "2024-01-15",
	"invoice_to": "Acme BV",
	"country": "Netherlands",
	"transactions": [
		{"description": "Consulting", "amount_pre_vat": 500.0, "vat_percentage": 21, "vat_category": "1a"}
	],
	"total_amount": 605.0
}`

const generalPayload = `{
	"document_title": "VAT Return Q1",
	"document_date": "2024-04-01",
	"key_amounts": [{"label": "VAT due", "value": "€105.00"}],
	"key_entities": ["Belastingdienst"],
	"summary": "Quarterly VAT filing."
}`

const bankPayload = `{
	"transactions": [
		{
			"transaction_id": "tx-1",
			"classification": {"account_code": "8010", "account_name": "Omzet Diensten", "confidence": 0.95},
			"special_flags": {"internal_transfer": false, "recurring_payment": false, "tax_related": false}
		}
	]
}`

func classifyAs(cat string) string {
	return fmt.Sprintf(`{"document_type":%q}`, cat)
}

func TestProcessInvoice(t *testing.T) {
	gen := &fakeGen{responses: map[string]string{
		"classification": classifyAs("invoice"),
		"invoice":        invoicePayload,
	}}
	p := NewProcessor(gen, nil)

	doc, err := p.Process(context.Background(), "Invoice #123 for Acme BV")
	require.NoError(t, err)

	assert.Equal(t, constants.Invoice, doc.Category)
	require.NotNil(t, doc.Invoice)
	assert.Equal(t, "123", doc.Invoice.InvoiceNo)
	require.Len(t, doc.Invoice.Transactions, 1)
	assert.Equal(t, constants.VATDomestic21, doc.Invoice.Transactions[0].VATCategory)
	assert.InDelta(t, 605.0, doc.Invoice.TotalAmount, 0.001)
	assert.Nil(t, doc.BankTransactions)
	assert.Nil(t, doc.General)
}

func TestProcessBankStatement(t *testing.T) {
	gen := &fakeGen{responses: map[string]string{
		"classification": classifyAs("bank_statement"),
		"bank_statement": bankPayload,
	}}
	p := NewProcessor(gen, nil)

	doc, err := p.Process(context.Background(), "Account statement January")
	require.NoError(t, err)

	assert.Equal(t, constants.BankStatement, doc.Category)
	require.Len(t, doc.BankTransactions, 1)
	assert.Equal(t, "8010", doc.BankTransactions[0].Classification.AccountCode)
	assert.Nil(t, doc.Invoice)
}

func TestProcessDispatchCoversAllCategories(t *testing.T) {
	for _, cat := range constants.AllCategories() {
		gen := &fakeGen{responses: map[string]string{
			"classification":   classifyAs(string(cat)),
			"invoice":          invoicePayload,
			"bank_statement":   bankPayload,
			"general_document": generalPayload,
		}}
		p := NewProcessor(gen, nil)

		doc, err := p.Process(context.Background(), "some text")
		require.NoError(t, err, "category %s", cat)
		assert.Equal(t, cat, doc.Category)
		assert.False(t, common.IsKind(err, common.ErrDispatch))
	}
}

func TestProcessLongTailUsesGeneralSchema(t *testing.T) {
	gen := &fakeGen{responses: map[string]string{
		"classification":   classifyAs("tax_document"),
		"general_document": generalPayload,
	}}
	p := NewProcessor(gen, nil)

	doc, err := p.Process(context.Background(), "BTW aangifte")
	require.NoError(t, err)
	assert.Equal(t, constants.TaxDocument, doc.Category)
	require.NotNil(t, doc.General)
	assert.Equal(t, "VAT Return Q1", doc.General.DocumentTitle)
	assert.Equal(t, []string{"classification", "general_document"}, gen.calls)
}

func TestProcessRejectsUnknownLabel(t *testing.T) {
	gen := &fakeGen{responses: map[string]string{
		"classification": classifyAs("poem"),
	}}
	p := NewProcessor(gen, nil)

	_, err := p.Process(context.Background(), "roses are red")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrClassification))
}

func TestProcessClassifierFailureWrapped(t *testing.T) {
	gen := &fakeGen{errs: map[string]error{
		"classification": fmt.Errorf("model unavailable"),
	}}
	p := NewProcessor(gen, nil)

	_, err := p.Process(context.Background(), "anything")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrClassification))
}

func TestProcessExtractorUnmarshalFailure(t *testing.T) {
	gen := &fakeGen{responses: map[string]string{
		"classification": classifyAs("invoice"),
		"invoice":        `{"invoice_no": 42}`,
	}}
	p := NewProcessor(gen, nil)

	_, err := p.Process(context.Background(), "Invoice #42")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrSchema))
}
