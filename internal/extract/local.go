package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/finwerk/docpipe/constants"
	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/normalize"
)

// LocalExtractor reads text straight out of digitally-native PDFs. It is the
// degraded-quality safety net when the remote OCR tier is unavailable; it
// cannot read scanned pages.
type LocalExtractor struct {
	logger *slog.Logger
}

func NewLocalExtractor(logger *slog.Logger) *LocalExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalExtractor{logger: logger}
}

// Extract concatenates per-page text in page order, each non-empty page
// prefixed with a "--- PAGE n ---" marker, then normalizes the result.
func (e *LocalExtractor) Extract(_ context.Context, fileBytes []byte, fileName string) (string, error) {
	if constants.FormatForFile(fileName) != constants.PDF {
		return "", common.WrapError(common.ErrUnsupportedFormat, "extract.local",
			fmt.Errorf("only digital PDFs are supported, got %q", fileName))
	}

	reader, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return "", common.WrapError(common.ErrExtractionFailure, "extract.local", err)
	}

	var b strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn("extract.local.page_error", "file", fileName, "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		fmt.Fprintf(&b, "--- PAGE %d ---\n", i)
		b.WriteString(content)
		b.WriteString("\n\n")
	}

	e.logger.Debug("extract.local.ok", "file", fileName, "pages", numPages, "bytes", b.Len())
	return normalize.Clean(b.String()), nil
}
