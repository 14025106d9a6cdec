package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Client abstracts generative-AI providers. Generate returns the model's text
// output verbatim; interpreting it is the caller's job.
type Client interface {
	Generate(ctx context.Context, prompt Prompt, cfg GenerationConfig) (string, error)
}

// Prompt is a provider-neutral model request.
type Prompt struct {
	// Model overrides the provider default when set.
	Model string
	Parts []Part
}

// Part is either text or an inline binary attachment.
type Part struct {
	Text   string
	Inline *InlineData
}

// InlineData carries raw attachment bytes and their MIME type.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart builds an attachment part.
func InlinePart(mimeType string, data []byte) Part {
	return Part{Inline: &InlineData{MIMEType: mimeType, Data: data}}
}

// GenerationConfig holds sampling parameters.
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// AnalysisConfig is the sampling setup used for document analysis.
var AnalysisConfig = GenerationConfig{Temperature: 0.2, TopP: 0.95, TopK: 40, MaxOutputTokens: 4096}

// DraftingConfig is the sampling setup used for document generation.
var DraftingConfig = GenerationConfig{Temperature: 0.7, TopP: 0.95, TopK: 40, MaxOutputTokens: 4096}

// ChatConfig is the sampling setup used for assistant replies.
var ChatConfig = GenerationConfig{Temperature: 0.7, TopP: 0.95, TopK: 40, MaxOutputTokens: 2048}

// ErrEmptyResponse is wrapped when a provider answers without any text.
var ErrEmptyResponse = errors.New("empty model response")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// UpstreamError reports a failed provider call: a non-2xx status, a transport
// failure or an unusable response body.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	var b strings.Builder
	b.WriteString(e.Provider)
	b.WriteString(" upstream error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		if len(body) > 512 {
			body = body[:512]
		}
		b.WriteString(": ")
		b.WriteString(body)
	}
	return b.String()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PlaceholderClient is used when no provider is configured.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt Prompt, cfg GenerationConfig) (string, error) {
	_ = ctx
	_ = prompt
	_ = cfg
	return "", &UpstreamError{Provider: "placeholder", Err: ErrNotConfigured}
}
