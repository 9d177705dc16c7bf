package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/entity"
	"github.com/finwerk/docpipe/internal/llm"
)

// Specialized extractors: one constrained generation call per schema. The
// model output is schema-validated by the generation client, so unmarshal
// failures here are contract violations, not plausible model noise.

type InvoiceExtractor struct {
	gen    llm.StructuredGenerationService
	logger *slog.Logger
}

func NewInvoiceExtractor(gen llm.StructuredGenerationService, logger *slog.Logger) *InvoiceExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvoiceExtractor{gen: gen, logger: logger}
}

func (e *InvoiceExtractor) Extract(ctx context.Context, text string) (*entity.InvoiceRecord, error) {
	raw, err := e.gen.GenerateStructured(ctx, llm.GenerateRequest{
		SchemaName: "invoice",
		System:     llm.InvoiceSystemPrompt(),
		User:       llm.BuildUserPrompt(text),
		Schema:     llm.BuildInvoiceSchema(),
	})
	if err != nil {
		return nil, err
	}
	var rec entity.InvoiceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, common.WrapError(common.ErrSchema, "extract.invoice", err)
	}
	e.logger.Info("extract.invoice.ok", "invoice_no", rec.InvoiceNo, "transactions", len(rec.Transactions))
	return &rec, nil
}

type BankStatementExtractor struct {
	gen    llm.StructuredGenerationService
	logger *slog.Logger
}

func NewBankStatementExtractor(gen llm.StructuredGenerationService, logger *slog.Logger) *BankStatementExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BankStatementExtractor{gen: gen, logger: logger}
}

func (e *BankStatementExtractor) Extract(ctx context.Context, text string) ([]entity.BankTransaction, error) {
	raw, err := e.gen.GenerateStructured(ctx, llm.GenerateRequest{
		SchemaName: "bank_statement",
		System:     llm.BankStatementSystemPrompt(),
		User:       llm.BuildUserPrompt(text),
		Schema:     llm.BuildBankStatementSchema(),
	})
	if err != nil {
		return nil, err
	}
	var out struct {
		Transactions []entity.BankTransaction `json:"transactions"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, common.WrapError(common.ErrSchema, "extract.bank_statement", err)
	}
	e.logger.Info("extract.bank_statement.ok", "transactions", len(out.Transactions))
	return out.Transactions, nil
}

type GeneralDocumentExtractor struct {
	gen    llm.StructuredGenerationService
	logger *slog.Logger
}

func NewGeneralDocumentExtractor(gen llm.StructuredGenerationService, logger *slog.Logger) *GeneralDocumentExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneralDocumentExtractor{gen: gen, logger: logger}
}

func (e *GeneralDocumentExtractor) Extract(ctx context.Context, text string) (*entity.GeneralDocumentRecord, error) {
	raw, err := e.gen.GenerateStructured(ctx, llm.GenerateRequest{
		SchemaName: "general_document",
		System:     llm.GeneralDocumentSystemPrompt(),
		User:       llm.BuildUserPrompt(text),
		Schema:     llm.BuildGeneralDocumentSchema(),
	})
	if err != nil {
		return nil, err
	}
	var rec entity.GeneralDocumentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, common.WrapError(common.ErrSchema, "extract.general", err)
	}
	e.logger.Info("extract.general.ok", "title", rec.DocumentTitle)
	return &rec, nil
}
