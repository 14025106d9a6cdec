package vertex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"legal-backend/internal/llm"
)

const providerName = "vertex"

// contentGenerator is the slice of *genai.GenerativeModel used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Client on Vertex AI Gemini models.
type Client struct {
	model      string
	baseClient *genai.Client
	newModel   func(name string, cfg genai.GenerationConfig) contentGenerator
}

// NewClient creates a Vertex AI client for the given project and region.
func NewClient(ctx context.Context, projectID, region, model string) (*Client, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("vertex.NewClient: projectID and region cannot be empty")
	}
	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}
	c := &Client{model: model, baseClient: baseClient}
	c.newModel = func(name string, cfg genai.GenerationConfig) contentGenerator {
		m := baseClient.GenerativeModel(name)
		m.GenerationConfig = cfg
		return m
	}
	return c, nil
}

// Generate runs a single GenerateContent call.
func (c *Client) Generate(ctx context.Context, prompt llm.Prompt, cfg llm.GenerationConfig) (string, error) {
	name := strings.TrimSpace(prompt.Model)
	if name == "" {
		name = c.model
	}
	model := c.newModel(name, genai.GenerationConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		TopP:            genai.Ptr(cfg.TopP),
		TopK:            genai.Ptr(cfg.TopK),
		MaxOutputTokens: genai.Ptr(cfg.MaxOutputTokens),
	})
	resp, err := model.GenerateContent(ctx, toParts(prompt.Parts)...)
	if err != nil {
		return "", &llm.UpstreamError{Provider: providerName, Err: err}
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", &llm.UpstreamError{Provider: providerName, Err: llm.ErrEmptyResponse}
	}
	return text, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}

func toParts(parts []llm.Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.Inline != nil {
			out = append(out, genai.Blob{MIMEType: p.Inline.MIMEType, Data: p.Inline.Data})
			continue
		}
		out = append(out, genai.Text(p.Text))
	}
	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
