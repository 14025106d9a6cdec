package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legal-backend/internal/llm"
)

type stubText struct {
	text string
}

func (s stubText) ExtractText(context.Context, []byte, MediaKind) string { return s.text }

func TestBuildPDFAttachesDocument(t *testing.T) {
	b := NewBuilder(BuilderConfig{}, stubText{})
	data := []byte("%PDF-1.4 fake")

	payload, err := b.Build(context.Background(), AnalysisRequest{FileName: "a.pdf", Data: data, Kind: KindPDF}, DefaultSchema)

	require.NoError(t, err)
	assert.Equal(t, DefaultBinaryModel, payload.Prompt.Model)
	assert.Equal(t, llm.AnalysisConfig, payload.Config)
	require.Len(t, payload.Prompt.Parts, 2)
	assert.Equal(t, Instruction(DefaultSchema), payload.Prompt.Parts[0].Text)
	require.NotNil(t, payload.Prompt.Parts[1].Inline)
	assert.Equal(t, "application/pdf", payload.Prompt.Parts[1].Inline.MIMEType)
	assert.Equal(t, data, payload.Prompt.Parts[1].Inline.Data)
}

func TestBuildDOCXInlinesExtractedText(t *testing.T) {
	b := NewBuilder(BuilderConfig{TextModel: "text-model"}, stubText{text: "PERJANJIAN KERJA"})

	payload, err := b.Build(context.Background(), AnalysisRequest{FileName: "a.docx", Data: []byte("PK"), Kind: KindDOCX}, nil)

	require.NoError(t, err)
	assert.Equal(t, "text-model", payload.Prompt.Model)
	require.Len(t, payload.Prompt.Parts, 1)
	assert.Nil(t, payload.Prompt.Parts[0].Inline)
	assert.True(t, strings.HasSuffix(payload.Prompt.Parts[0].Text, "\n\nDocument content:\nPERJANJIAN KERJA"))
}

func TestBuildPDFAsTextUsesExtractedText(t *testing.T) {
	b := NewBuilder(BuilderConfig{TextModel: "text-model", PDFAsText: true}, stubText{text: "PERJANJIAN SEWA"})

	payload, err := b.Build(context.Background(), AnalysisRequest{FileName: "a.pdf", Data: []byte("%PDF-1.4 fake"), Kind: KindPDF}, DefaultSchema)

	require.NoError(t, err)
	assert.Equal(t, "text-model", payload.Prompt.Model)
	require.Len(t, payload.Prompt.Parts, 1)
	assert.Nil(t, payload.Prompt.Parts[0].Inline)
	assert.True(t, strings.HasSuffix(payload.Prompt.Parts[0].Text, "\n\nDocument content:\nPERJANJIAN SEWA"))
}

func TestBuildCapsExtractedText(t *testing.T) {
	b := NewBuilder(BuilderConfig{MaxTextChars: 10}, nil)

	payload, err := b.Build(context.Background(), AnalysisRequest{FileName: "a.txt", Data: []byte("PERJANJIAN KERJA WAKTU TERTENTU"), Kind: KindText}, DefaultSchema)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(payload.Prompt.Parts[0].Text, "Document content:\nPERJANJIAN"))
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(BuilderConfig{}, stubText{text: "x"})
	req := AnalysisRequest{FileName: "a.txt", Data: []byte("x"), Kind: KindText}

	first, err := b.Build(context.Background(), req, DefaultSchema)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), req, DefaultSchema)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildRejectsInvalidInput(t *testing.T) {
	b := NewBuilder(BuilderConfig{}, stubText{})

	_, err := b.Build(context.Background(), AnalysisRequest{Kind: KindPDF}, DefaultSchema)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = b.Build(context.Background(), AnalysisRequest{Data: []byte("x"), Kind: MediaKind("doc")}, DefaultSchema)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestInstructionNamesEveryKey(t *testing.T) {
	instruction := Instruction(DefaultSchema)
	for _, f := range DefaultSchema {
		assert.Contains(t, instruction, f.Key)
		if f.Synonym != "" {
			assert.Contains(t, instruction, f.Synonym)
		}
	}
	assert.Contains(t, instruction, "title, date, partyOne, partyTwo, agreementType, description, htmlSummary")
}
