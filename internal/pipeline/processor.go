package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finwerk/docpipe/constants"
	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/entity"
	"github.com/finwerk/docpipe/internal/llm"
)

// extractFn produces the variant payload for one category.
type extractFn func(ctx context.Context, text string) (entity.Document, error)

// Processor routes classified text to the matching specialized extractor
// through an explicit dispatch table — no runtime type inspection.
type Processor struct {
	classifier *Classifier
	dispatch   map[constants.DocumentCategory]extractFn
	logger     *slog.Logger
}

// NewProcessor wires the classifier and the three extractor types. The four
// long-tail categories share the general catch-all schema on purpose: five
// near-identical schemas would buy nothing.
func NewProcessor(gen llm.StructuredGenerationService, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}

	invoice := NewInvoiceExtractor(gen, logger)
	bank := NewBankStatementExtractor(gen, logger)
	general := NewGeneralDocumentExtractor(gen, logger)

	invoiceFn := func(ctx context.Context, text string) (entity.Document, error) {
		rec, err := invoice.Extract(ctx, text)
		if err != nil {
			return entity.Document{}, err
		}
		return entity.Document{Category: constants.Invoice, Invoice: rec}, nil
	}
	bankFn := func(ctx context.Context, text string) (entity.Document, error) {
		txs, err := bank.Extract(ctx, text)
		if err != nil {
			return entity.Document{}, err
		}
		return entity.Document{Category: constants.BankStatement, BankTransactions: txs}, nil
	}
	generalFor := func(cat constants.DocumentCategory) extractFn {
		return func(ctx context.Context, text string) (entity.Document, error) {
			rec, err := general.Extract(ctx, text)
			if err != nil {
				return entity.Document{}, err
			}
			return entity.Document{Category: cat, General: rec}, nil
		}
	}

	return &Processor{
		classifier: NewClassifier(gen, logger),
		dispatch: map[constants.DocumentCategory]extractFn{
			constants.Invoice:         invoiceFn,
			constants.BankStatement:   bankFn,
			constants.TaxDocument:     generalFor(constants.TaxDocument),
			constants.Receipt:         generalFor(constants.Receipt),
			constants.FinancialReport: generalFor(constants.FinancialReport),
			constants.Other:           generalFor(constants.Other),
		},
		logger: logger,
	}
}

// Process classifies the text and dispatches to the matching extractor.
// An unknown category is a programming-contract violation (ErrDispatch),
// not a recoverable input error.
func (p *Processor) Process(ctx context.Context, text string) (entity.Document, error) {
	category, err := p.classifier.Classify(ctx, text)
	if err != nil {
		return entity.Document{}, err
	}

	fn, ok := p.dispatch[category]
	if !ok {
		return entity.Document{}, common.WrapError(common.ErrDispatch, "process",
			fmt.Errorf("no extractor registered for category %q", category))
	}
	return fn(ctx, text)
}
