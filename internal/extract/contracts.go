package extract

import "context"

// TextExtractionService turns raw document bytes into cleaned text.
// Implementations: LocalExtractor (digital PDFs), RemoteExtractor (Textract).
type TextExtractionService interface {
	Extract(ctx context.Context, fileBytes []byte, fileName string) (string, error)
}
