package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwerk/docpipe/internal/common"
)

type fakeTextract struct {
	out   *textract.DetectDocumentTextOutput
	err   error
	calls int
}

func (f *fakeTextract) DetectDocumentText(_ context.Context, _ *textract.DetectDocumentTextInput, _ ...func(*textract.Options)) (*textract.DetectDocumentTextOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func line(page int32, top, left float32, text string) types.Block {
	return types.Block{
		BlockType: types.BlockTypeLine,
		Page:      aws.Int32(page),
		Text:      aws.String(text),
		Geometry: &types.Geometry{
			BoundingBox: &types.BoundingBox{Top: top, Left: left},
		},
	}
}

func TestRemoteExtractReadingOrder(t *testing.T) {
	fake := &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []types.Block{
			line(1, 0.5, 0.1, "B"),
			line(1, 0.1, 0.2, "A"),
		},
	}}
	e := NewRemoteExtractor(fake, nil, 0, nil)

	text, err := e.Extract(context.Background(), []byte("scan"), "doc.pdf")
	require.NoError(t, err)
	assert.Less(t, strings.Index(text, "A"), strings.Index(text, "B"))
}

func TestRemoteExtractSortsByLeftWithinRow(t *testing.T) {
	fake := &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []types.Block{
			line(1, 0.2, 0.8, "right"),
			line(1, 0.2, 0.1, "left"),
		},
	}}
	e := NewRemoteExtractor(fake, nil, 0, nil)

	text, err := e.Extract(context.Background(), []byte("scan"), "doc.pdf")
	require.NoError(t, err)
	assert.Less(t, strings.Index(text, "left"), strings.Index(text, "right"))
}

func TestRemoteExtractPageBreaks(t *testing.T) {
	fake := &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []types.Block{
			line(2, 0.1, 0.1, "second page"),
			line(1, 0.1, 0.1, "first page"),
		},
	}}
	e := NewRemoteExtractor(fake, nil, 0, nil)

	text, err := e.Extract(context.Background(), []byte("scan"), "doc.pdf")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(text, "--- PAGE BREAK ---"))
	assert.Less(t, strings.Index(text, "first page"), strings.Index(text, "--- PAGE BREAK ---"))
	assert.False(t, strings.HasSuffix(text, "--- PAGE BREAK ---"))
}

func TestRemoteExtractIgnoresNonLineBlocks(t *testing.T) {
	fake := &fakeTextract{out: &textract.DetectDocumentTextOutput{
		Blocks: []types.Block{
			{BlockType: types.BlockTypePage, Page: aws.Int32(1)},
			line(1, 0.1, 0.1, "only line"),
		},
	}}
	e := NewRemoteExtractor(fake, nil, 0, nil)

	text, err := e.Extract(context.Background(), []byte("scan"), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "only line", text)
}

func TestRemoteExtractServiceError(t *testing.T) {
	fake := &fakeTextract{err: errors.New("ExpiredTokenException")}
	e := NewRemoteExtractor(fake, nil, 0, nil)

	_, err := e.Extract(context.Background(), []byte("scan"), "doc.pdf")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrRemoteService))
}
