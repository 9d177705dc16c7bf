// Package spreadsheet is the Excel boundary. Workbooks bypass the whole
// classify/extract pipeline: the result is the cleaned table itself.
package spreadsheet

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/entity"
)

type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse reads the first sheet of a workbook into a rectangular table:
// all-empty rows are dropped and short rows padded with "" so every row has
// the same width.
func (p *Parser) Parse(fileBytes []byte, fileName string) (entity.TabularResult, error) {
	f, err := excelize.OpenReader(bytes.NewReader(fileBytes))
	if err != nil {
		return entity.TabularResult{}, common.WrapError(common.ErrExtractionFailure, "spreadsheet.parse", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			p.logger.Warn("spreadsheet.close_error", "file", fileName, "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return entity.TabularResult{}, common.WrapError(common.ErrExtractionFailure, "spreadsheet.parse",
			fmt.Errorf("workbook %q has no sheets", fileName))
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return entity.TabularResult{}, common.WrapError(common.ErrExtractionFailure, "spreadsheet.parse", err)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	cleaned := make([][]string, 0, len(rows))
	for _, row := range rows {
		empty := true
		padded := make([]string, width)
		for i := 0; i < width; i++ {
			if i < len(row) {
				padded[i] = row[i]
				if strings.TrimSpace(row[i]) != "" {
					empty = false
				}
			}
		}
		if !empty {
			cleaned = append(cleaned, padded)
		}
	}

	p.logger.Info("spreadsheet.parsed", "file", fileName, "sheet", sheet, "rows", len(cleaned), "cols", width)
	return entity.TabularResult{SheetName: sheet, Rows: cleaned}, nil
}
