package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

// Gemini calls the Google Gemini API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	m := client.GenerativeModel(model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(SystemInstruction)}}

	return &Gemini{client: client, model: m}, nil
}

func (g *Gemini) Advise(ctx context.Context, snapshot []transaction.Transaction) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(BuildPrompt(snapshot)))
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	var sb strings.Builder

	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}

		for _, part := range c.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}

		break
	}

	return sb.String(), nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}
