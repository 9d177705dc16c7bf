package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/finwerk/docpipe/constants"
	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/entity"
	"github.com/finwerk/docpipe/internal/extract"
	"github.com/finwerk/docpipe/internal/spreadsheet"
)

// FileInput is one uploaded file handed to the batch runner.
type FileInput struct {
	Name string
	Data []byte
}

// BatchItem is the per-file outcome. Exactly one of Document/Table is set
// on success; Err carries the failure with the file's identity preserved.
type BatchItem struct {
	ID         uuid.UUID
	SourceName string
	Extraction *entity.ExtractionResult
	Document   *entity.Document
	Table      *entity.TabularResult
	Err        error
}

// Batch runs the full pipeline over a list of files, sequentially. One bad
// document never aborts the batch: its error is recorded and processing
// moves on.
type Batch struct {
	gateway      *extract.Gateway
	processor    *Processor
	sheets       *spreadsheet.Parser
	preferRemote bool
	logger       *slog.Logger
}

func NewBatch(gateway *extract.Gateway, processor *Processor, sheets *spreadsheet.Parser, preferRemote bool, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{
		gateway:      gateway,
		processor:    processor,
		sheets:       sheets,
		preferRemote: preferRemote,
		logger:       logger,
	}
}

// Run processes each file in order. Excel files route straight to the
// spreadsheet boundary; everything else goes through extraction,
// classification, and specialized extraction.
func (b *Batch) Run(ctx context.Context, files []FileInput) []BatchItem {
	items := make([]BatchItem, 0, len(files))
	for _, file := range files {
		item := b.processOne(ctx, file)
		if item.Err != nil {
			b.logger.Error("batch.item_failed", "id", item.ID, "file", item.SourceName, "error", item.Err)
		} else {
			b.logger.Info("batch.item_ok", "id", item.ID, "file", item.SourceName)
		}
		items = append(items, item)
	}
	return items
}

func (b *Batch) processOne(ctx context.Context, file FileInput) BatchItem {
	item := BatchItem{ID: uuid.New(), SourceName: file.Name}

	switch constants.FormatForFile(file.Name) {
	case constants.EXCEL:
		table, err := b.sheets.Parse(file.Data, file.Name)
		if err != nil {
			item.Err = fmt.Errorf("%s: %w", file.Name, err)
			return item
		}
		item.Table = &table
		return item

	case constants.PDF:
		res, err := b.gateway.ExtractResult(ctx, file.Data, file.Name, b.preferRemote)
		if err != nil {
			item.Err = fmt.Errorf("%s: %w", file.Name, err)
			return item
		}
		item.Extraction = &res

		doc, err := b.processor.Process(ctx, res.RawText)
		if err != nil {
			item.Err = fmt.Errorf("%s: %w", file.Name, err)
			return item
		}
		item.Document = &doc
		return item

	default:
		item.Err = fmt.Errorf("%s: %w", file.Name,
			common.WrapError(common.ErrUnsupportedFormat, "batch",
				fmt.Errorf("no processing route for this extension")))
		return item
	}
}
