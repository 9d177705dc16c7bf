package llm

import "context"

// GenerateRequest is one constrained generation call: the model must return
// JSON conforming to Schema.
type GenerateRequest struct {
	SchemaName string         // short name for logging ("classification", "invoice", ...)
	System     string         // instruction prompt
	User       string         // document text payload
	Schema     map[string]any // JSON-Schema the output must satisfy
}

// StructuredGenerationService is the capability boundary to the language
// model. The returned bytes are guaranteed by implementations to validate
// against req.Schema; a non-conforming model output is an error, never a
// silently-coerced value.
type StructuredGenerationService interface {
	GenerateStructured(ctx context.Context, req GenerateRequest) ([]byte, error)
}
