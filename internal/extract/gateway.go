package extract

import (
	"context"
	"log/slog"

	"github.com/finwerk/docpipe/internal/entity"
	"github.com/finwerk/docpipe/internal/quality"
)

// Gateway orchestrates the two extraction tiers. The remote service yields
// materially better text for scanned documents but needs credentials and
// network; the local parser is always available for digital PDFs.
type Gateway struct {
	remote TextExtractionService // nil when no credentials are configured
	local  TextExtractionService
	logger *slog.Logger
}

func NewGateway(remote, local TextExtractionService, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{remote: remote, local: local, logger: logger}
}

// Extract runs the two-tier policy: try remote when preferRemote is set,
// fall back to local on any remote failure. A remote failure never surfaces
// to the caller; a local failure is terminal — there is no further tier.
func (g *Gateway) Extract(ctx context.Context, fileBytes []byte, fileName string, preferRemote bool) (string, error) {
	if preferRemote && g.remote != nil {
		text, err := g.remote.Extract(ctx, fileBytes, fileName)
		if err == nil {
			return text, nil
		}
		g.logger.Warn("extract.remote.fallback", "file", fileName, "error", err)
	}
	return g.local.Extract(ctx, fileBytes, fileName)
}

// ExtractResult runs Extract and attaches the quality score, producing the
// immutable record handed to classification.
func (g *Gateway) ExtractResult(ctx context.Context, fileBytes []byte, fileName string, preferRemote bool) (entity.ExtractionResult, error) {
	text, err := g.Extract(ctx, fileBytes, fileName, preferRemote)
	if err != nil {
		return entity.ExtractionResult{}, err
	}
	score := quality.Score(text)
	g.logger.Info("extract.ok",
		"file", fileName,
		"chars", len(text),
		"quality_score", score,
		"quality_band", quality.BandFor(score),
	)
	return entity.ExtractionResult{
		SourceName:   fileName,
		RawText:      text,
		QualityScore: score,
	}, nil
}
