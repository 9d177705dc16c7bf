package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapErrorPreservesKind(t *testing.T) {
	cause := errors.New("socket closed")
	err := WrapError(ErrRemoteService, "extract.remote", cause)

	require.Error(t, err)
	assert.True(t, IsKind(err, ErrRemoteService))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "extract.remote")
}

func TestWrapErrorSurvivesFurtherWrapping(t *testing.T) {
	err := WrapError(ErrSchema, "llm.generate", errors.New("missing field"))
	outer := fmt.Errorf("doc.pdf: %w", err)

	assert.True(t, IsKind(outer, ErrSchema))
	assert.False(t, IsKind(outer, ErrRemoteService))
}

func TestWrapErrorNil(t *testing.T) {
	assert.NoError(t, WrapError(ErrSchema, "op", nil))
}
