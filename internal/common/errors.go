package common

import (
	"errors"
	"fmt"
)

// Error taxonomy for the document pipeline. Kinds are sentinel errors so
// callers can branch with errors.Is regardless of how deep the wrap is.
var (
	// ErrUnsupportedFormat: the file is not something the local path can read.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrExtractionFailure: the local PDF parser could not read the structure.
	ErrExtractionFailure = errors.New("extraction failure")
	// ErrRemoteService: any transport/credential/service failure from the
	// remote OCR tier. Callers cannot distinguish transient from permanent.
	ErrRemoteService = errors.New("remote service error")
	// ErrClassification: the model call failed or returned a label outside
	// the closed category set.
	ErrClassification = errors.New("classification error")
	// ErrDispatch: a category value with no registered extractor. Should be
	// unreachable given the closed classifier output set.
	ErrDispatch = errors.New("dispatch error")
	// ErrSchema: the model output could not be coerced into the target schema.
	ErrSchema = errors.New("extraction schema error")
)

// WrapError preserves the typed kind while adding operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err, kind error) bool {
	return errors.Is(err, kind)
}
