package claude

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"legal-backend/internal/llm"
)

const providerName = "anthropic"

// Messager is the subset of the SDK messages service the client needs.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client implements llm.Client on the Anthropic Messages API.
type Client struct {
	messages Messager
	model    string
}

// NewClient builds a client with the given API key and default model.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewWithMessager(&c.Messages, model), nil
}

// NewWithMessager wires an existing messages service, mostly for tests.
func NewWithMessager(messages Messager, model string) *Client {
	return &Client{messages: messages, model: model}
}

// Generate sends the prompt as a single user turn.
func (c *Client) Generate(ctx context.Context, prompt llm.Prompt, cfg llm.GenerationConfig) (string, error) {
	model := c.model
	if m := strings.TrimSpace(prompt.Model); m != "" && strings.HasPrefix(m, "claude") {
		model = m
	}
	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(cfg.MaxOutputTokens),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(toBlocks(prompt.Parts)...)},
		Temperature: anthropic.Float(float64(cfg.Temperature)),
		TopK:        anthropic.Int(int64(cfg.TopK)),
	})
	if err != nil {
		upstream := &llm.UpstreamError{Provider: providerName, Err: err}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			upstream.StatusCode = apiErr.StatusCode
		}
		return "", upstream
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", &llm.UpstreamError{Provider: providerName, Err: llm.ErrEmptyResponse}
	}
	return sb.String(), nil
}

func toBlocks(parts []llm.Part) []anthropic.ContentBlockParamUnion {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(parts))
	for _, p := range parts {
		if p.Inline != nil {
			if p.Inline.MIMEType == "application/pdf" {
				blocks = append(blocks, anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: base64.StdEncoding.EncodeToString(p.Inline.Data),
				}))
			}
			continue
		}
		blocks = append(blocks, anthropic.NewTextBlock(p.Text))
	}
	return blocks
}
