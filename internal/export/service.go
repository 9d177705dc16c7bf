package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/finwerk/docpipe/internal/pipeline"
	"github.com/finwerk/docpipe/internal/quality"
)

// Service renders batch results into an XLSX workbook for hand-off to
// bookkeeping. It owns no state; the caller decides where the bytes go.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// BuildWorkbook returns an XLSX workbook (as bytes) with a summary sheet
// plus one sheet each for invoice line items and bank transactions.
func (s *Service) BuildWorkbook(items []pipeline.BatchItem) ([]byte, error) {
	start := time.Now()
	f := excelize.NewFile()

	const summarySheet = "Documents"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	writeHeader(f, summarySheet, []string{"Source", "Kind", "Category", "Quality Score", "Quality Band", "Error"})

	invoiceSheet, err := newSheet(f, "Invoices")
	if err != nil {
		return nil, err
	}
	writeHeader(f, invoiceSheet, []string{"Source", "Invoice No", "Date", "Billed To", "Country", "Description", "Amount Pre VAT", "VAT %", "VAT Code", "Invoice Total"})

	bankSheet, err := newSheet(f, "Bank Transactions")
	if err != nil {
		return nil, err
	}
	writeHeader(f, bankSheet, []string{"Source", "Transaction ID", "Account Code", "Account Name", "Confidence", "Internal Transfer", "Recurring", "Tax Related"})

	summaryRow, invoiceRow, bankRow := 2, 2, 2
	for _, item := range items {
		kind, category := "document", ""
		score, band := "", ""
		errMsg := ""
		if item.Err != nil {
			errMsg = item.Err.Error()
		}
		if item.Table != nil {
			kind = "spreadsheet"
		}
		if item.Extraction != nil {
			score = fmt.Sprintf("%d", item.Extraction.QualityScore)
			band = string(quality.BandFor(item.Extraction.QualityScore))
		}
		if item.Document != nil {
			category = string(item.Document.Category)
		}
		writeRow(f, summarySheet, summaryRow, []any{item.SourceName, kind, category, score, band, errMsg})
		summaryRow++

		if item.Document == nil {
			continue
		}
		if inv := item.Document.Invoice; inv != nil {
			for _, tx := range inv.Transactions {
				writeRow(f, invoiceSheet, invoiceRow, []any{
					item.SourceName, inv.InvoiceNo, inv.Date, inv.InvoiceTo, inv.Country,
					tx.Description, tx.AmountPreVAT, tx.VATPercentage, string(tx.VATCategory), inv.TotalAmount,
				})
				invoiceRow++
			}
		}
		for _, tx := range item.Document.BankTransactions {
			writeRow(f, bankSheet, bankRow, []any{
				item.SourceName, tx.TransactionID,
				tx.Classification.AccountCode, tx.Classification.AccountName, tx.Classification.Confidence,
				tx.SpecialFlags.InternalTransfer, tx.SpecialFlags.RecurringPayment, tx.SpecialFlags.TaxRelated,
			})
			bankRow++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	s.logger.Info("export.workbook_built",
		"items", len(items),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string) (string, error) {
	if _, err := f.NewSheet(name); err != nil {
		return "", err
	}
	return name, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
