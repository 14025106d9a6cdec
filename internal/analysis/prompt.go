package analysis

import (
	"context"
	"fmt"
	"strings"

	"legal-backend/internal/extract"
	"legal-backend/internal/llm"
)

const (
	DefaultBinaryModel = "gemini-2.0-flash"
	DefaultTextModel   = "gemini-1.5-flash"
)

// TextExtractor turns uploads that are not attached as files into plain text
// for the prompt.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, kind MediaKind) string
}

// BuilderConfig selects models per input kind and the sampling setup.
type BuilderConfig struct {
	BinaryModel string
	TextModel   string
	Generation  llm.GenerationConfig
	// PDFAsText sends the extracted PDF text instead of attaching the file.
	PDFAsText bool
	// MaxTextChars caps extracted text. Zero keeps all of it.
	MaxTextChars int
}

// PromptPayload is a ready-to-send model request.
type PromptPayload struct {
	Prompt llm.Prompt
	Config llm.GenerationConfig
}

// Builder renders analysis requests into model prompts.
type Builder struct {
	cfg  BuilderConfig
	text TextExtractor
}

// NewBuilder fills unset config values with the defaults.
func NewBuilder(cfg BuilderConfig, text TextExtractor) *Builder {
	if cfg.BinaryModel == "" {
		cfg.BinaryModel = DefaultBinaryModel
	}
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.Generation == (llm.GenerationConfig{}) {
		cfg.Generation = llm.AnalysisConfig
	}
	if text == nil {
		text = extract.Extractor{MaxChars: cfg.MaxTextChars}
	}
	return &Builder{cfg: cfg, text: text}
}

// Build returns the prompt for req. It only fails on invalid input.
func (b *Builder) Build(ctx context.Context, req AnalysisRequest, schema FieldSchema) (PromptPayload, error) {
	if len(req.Data) == 0 {
		return PromptPayload{}, invalid("document is empty")
	}
	if len(schema) == 0 {
		schema = DefaultSchema
	}
	instruction := Instruction(schema)

	switch req.Kind {
	case KindPDF, KindDOCX, KindText:
	default:
		return PromptPayload{}, invalid(fmt.Sprintf("unsupported document kind %q", req.Kind))
	}

	if req.Kind.Binary() && !b.cfg.PDFAsText {
		return PromptPayload{
			Prompt: llm.Prompt{
				Model: b.cfg.BinaryModel,
				Parts: []llm.Part{
					llm.TextPart(instruction),
					llm.InlinePart(req.Kind.MIMEType(), req.Data),
				},
			},
			Config: b.cfg.Generation,
		}, nil
	}

	content := b.text.ExtractText(ctx, req.Data, req.Kind)
	return PromptPayload{
		Prompt: llm.Prompt{
			Model: b.cfg.TextModel,
			Parts: []llm.Part{llm.TextPart(instruction + "\n\nDocument content:\n" + content)},
		},
		Config: b.cfg.Generation,
	}, nil
}

// Instruction renders the fixed analysis instruction for a schema.
func Instruction(schema FieldSchema) string {
	var b strings.Builder
	b.WriteString("Analyze this legal document and extract the following details:\n")
	for _, f := range schema {
		b.WriteString("- ")
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Meaning)
		if f.Synonym != "" {
			b.WriteString(" (")
			b.WriteString(f.Synonym)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	b.WriteString("The htmlSummary must be an HTML fragment listing the key points of the document. ")
	b.WriteString("Write dates as they appear in the document. ")
	b.WriteString("Return the results as a single JSON object with these exact field names: ")
	b.WriteString(strings.Join(schema.Keys(), ", "))
	b.WriteString(". Do not add any other keys.")
	return b.String()
}
