package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finwerk/docpipe/constants"
	"github.com/finwerk/docpipe/internal/common"
	"github.com/finwerk/docpipe/internal/llm"
)

// Classifier maps raw text to one of the closed document categories with a
// single constrained generation call. There is no local keyword fallback:
// classification correctness is delegated entirely to the model.
type Classifier struct {
	gen    llm.StructuredGenerationService
	logger *slog.Logger
}

func NewClassifier(gen llm.StructuredGenerationService, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{gen: gen, logger: logger}
}

func (c *Classifier) Classify(ctx context.Context, text string) (constants.DocumentCategory, error) {
	raw, err := c.gen.GenerateStructured(ctx, llm.GenerateRequest{
		SchemaName: "classification",
		System:     llm.ClassifierSystemPrompt(),
		User:       llm.BuildUserPrompt(text),
		Schema:     llm.BuildClassificationSchema(),
	})
	if err != nil {
		return "", common.WrapError(common.ErrClassification, "classify", err)
	}

	var out struct {
		DocumentType string `json:"document_type"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", common.WrapError(common.ErrClassification, "classify", err)
	}

	category, ok := constants.ParseCategory(out.DocumentType)
	if !ok {
		// the schema enum should make this unreachable; if the model gets
		// here anyway it broke the contract
		return "", common.WrapError(common.ErrClassification, "classify",
			fmt.Errorf("label %q outside the closed category set", out.DocumentType))
	}

	c.logger.Info("classify.ok", "category", category)
	return category, nil
}
