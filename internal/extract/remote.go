package extract

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/google/uuid"

	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/normalize"
	"github.com/finwerk/docpipe/internal/resilience"
)

// TextractAPI is the slice of the Textract client the extractor needs;
// tests substitute a deterministic fake.
type TextractAPI interface {
	DetectDocumentText(ctx context.Context, params *textract.DetectDocumentTextInput, optFns ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error)
}

// RemoteExtractor extracts text through Textract's synchronous
// document-text-detection API. Textract returns lines in detection order,
// so reading order is reconstructed from each line's bounding box.
type RemoteExtractor struct {
	client  TextractAPI
	exec    *resilience.Executor
	timeout time.Duration
	logger  *slog.Logger
}

func NewRemoteExtractor(client TextractAPI, exec *resilience.Executor, timeout time.Duration, logger *slog.Logger) *RemoteExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RemoteExtractor{client: client, exec: exec, timeout: timeout, logger: logger}
}

type ocrLine struct {
	top  float32
	left float32
	text string
}

// Extract submits the document bytes and rebuilds natural reading order:
// lines grouped by page, sorted top-to-bottom then left-to-right, pages
// separated by a "--- PAGE BREAK ---" marker. All transport, credential,
// and service failures collapse into ErrRemoteService; the caller decides
// whether to fall back.
func (e *RemoteExtractor) Extract(ctx context.Context, fileBytes []byte, fileName string) (string, error) {
	reqID := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	e.logger.Info("extract.remote.request", "req_id", reqID, "file", fileName, "bytes", len(fileBytes))

	var out *textract.DetectDocumentTextOutput
	call := func(ctx context.Context) error {
		var err error
		out, err = e.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
			Document: &types.Document{Bytes: fileBytes},
		})
		return err
	}

	var err error
	if e.exec != nil {
		err = e.exec.Execute(ctx, "textract.detect", call, classifyRemoteError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		e.logger.Error("extract.remote.error",
			"req_id", reqID, "file", fileName, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.WrapError(common.ErrRemoteService, "extract.remote", err)
	}

	pages := make(map[int32][]ocrLine)
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine || block.Text == nil {
			continue
		}
		pageNum := int32(1)
		if block.Page != nil {
			pageNum = *block.Page
		}
		line := ocrLine{text: strings.TrimSpace(*block.Text)}
		if line.text == "" {
			continue
		}
		if block.Geometry != nil && block.Geometry.BoundingBox != nil {
			line.top = block.Geometry.BoundingBox.Top
			line.left = block.Geometry.BoundingBox.Left
		}
		pages[pageNum] = append(pages[pageNum], line)
	}

	pageNums := make([]int32, 0, len(pages))
	for n := range pages {
		pageNums = append(pageNums, n)
	}
	sort.Slice(pageNums, func(i, j int) bool { return pageNums[i] < pageNums[j] })

	var b strings.Builder
	for i, n := range pageNums {
		lines := pages[n]
		sort.SliceStable(lines, func(a, z int) bool {
			if lines[a].top != lines[z].top {
				return lines[a].top < lines[z].top
			}
			return lines[a].left < lines[z].left
		})
		for _, line := range lines {
			b.WriteString(line.text)
			b.WriteString("\n")
		}
		if i < len(pageNums)-1 {
			b.WriteString("\n--- PAGE BREAK ---\n")
		}
	}

	e.logger.Info("extract.remote.ok",
		"req_id", reqID, "file", fileName, "pages", len(pageNums),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return normalize.Clean(b.String()), nil
}

// classifyRemoteError treats everything except cancellation as retryable:
// callers only ever see ErrRemoteService, and Textract throttling/5xx
// dominate in practice.
func classifyRemoteError(err error) resilience.Classification {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Classification{Retryable: false, RecordFailure: false}
	}
	return resilience.Classification{Retryable: true, RecordFailure: true}
}

var _ TextExtractionService = (*RemoteExtractor)(nil)
