package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Part is one ordered piece of a model request: either inline media
// (Data + MIMEType) or text.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// Generator issues a single generation call and returns the raw text
// reply. Implementations do not retry; callers degrade on error.
type Generator interface {
	Generate(ctx context.Context, model string, parts []Part, jsonOnly bool) (string, error)
}

// Gemini is the production Generator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
}

var _ Generator = (*Gemini)(nil)

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Generate(ctx context.Context, model string, parts []Part, jsonOnly bool) (string, error) {
	genParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if len(p.Data) > 0 {
			genParts = append(genParts, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		genParts = append(genParts, genai.NewPartFromText(p.Text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(genParts, genai.RoleUser)}

	var cfg *genai.GenerateContentConfig
	if jsonOnly {
		cfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
