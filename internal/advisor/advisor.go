// Package advisor asks a language model for a narrative analysis of the
// user's transactions.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phillipyBr/Meu-Bolso/internal/transaction"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

const DefaultModel = "gemini-2.5-flash"

// SystemInstruction sets the persona of the model.
const SystemInstruction = "Você é um consultor financeiro pessoal experiente, amigável e focado em ajudar brasileiros a organizar suas finanças."

var (
	ErrNotConfigured = errors.New("advisor not configured")
	ErrEmptyResponse = errors.New("advisor returned an empty response")
)

type Advisor interface {
	Advise(ctx context.Context, snapshot []transaction.Transaction) (string, error)
}

// Func adapts an ordinary function to the Advisor interface.
type Func func(ctx context.Context, snapshot []transaction.Transaction) (string, error)

func (f Func) Advise(ctx context.Context, snapshot []transaction.Transaction) (string, error) {
	return f(ctx, snapshot)
}

type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// New builds the advisor for cfg.Provider. Without an API key it returns an
// advisor whose every call fails with ErrNotConfigured.
func New(ctx context.Context, cfg Config) (Advisor, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Func(func(context.Context, []transaction.Transaction) (string, error) {
			return "", ErrNotConfigured
		}), nil
	}

	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	}

	return nil, fmt.Errorf("unknown advisor provider: %s", cfg.Provider)
}

// BuildPrompt lists every transaction and asks for an analysis, three saving
// tips and a motivational note, in Brazilian Portuguese Markdown.
func BuildPrompt(snapshot []transaction.Transaction) string {
	var sb strings.Builder

	sb.WriteString("Analise os seguintes dados financeiros do usuário \"Meu Bolso\":\n\n")

	for i, tx := range snapshot {
		if i > 0 {
			sb.WriteByte('\n')
		}

		kind := "Despesa"
		if tx.Type == transaction.TypeIncome {
			kind = "Receita"
		}

		fmt.Fprintf(&sb, "- %s: %s de R$ %s em %s (%s)",
			tx.Date.Format(time.DateOnly), kind, tx.Amount.StringFixed(2), tx.Category, tx.Description)
	}

	sb.WriteString("\n\nPor favor, forneça:\n")
	sb.WriteString("1. Uma breve análise do padrão de gastos.\n")
	sb.WriteString("2. Três dicas práticas e acionáveis para economizar dinheiro baseadas especificamente nestes gastos.\n")
	sb.WriteString("3. Um comentário motivacional curto.\n\n")
	sb.WriteString("Responda em português do Brasil. Use formatação Markdown (negrito, listas) para facilitar a leitura. Seja amigável e direto.")

	return sb.String()
}
