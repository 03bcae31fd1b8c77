package itinerary

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/genai"
)

const defaultTemperature = 0.7

// Generator streams model output for a prompt as text deltas in the order
// the model emits them. The sequence ends after the first error.
type Generator interface {
	GenerateStream(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// GeminiGenerator is a Generator backed by the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini API client for apiKey.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("itinerary.NewGeminiGenerator: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// GenerateStream implements Generator.
func (g *GeminiGenerator) GenerateStream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		stream := g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt),
			&genai.GenerateContentConfig{Temperature: genai.Ptr[float32](defaultTemperature)})
		for resp, err := range stream {
			if err != nil {
				yield("", fmt.Errorf("gemini stream: %w", err))
				return
			}
			if !yield(responseText(resp), nil) {
				return
			}
		}
	}
}

// responseText concatenates the text parts of every candidate in resp.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if p != nil {
				b.WriteString(p.Text)
			}
		}
	}
	return b.String()
}
