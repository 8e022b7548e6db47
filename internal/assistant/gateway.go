// Package assistant formats the user's financial snapshot and chat
// history into a single prompt for an external text-generation service,
// and degrades to a locally generated summary when that call fails.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/FehCode/financeflow1/internal/config"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// Message roles in the conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of the prior conversation.
type Message struct {
	Role string `json:"role"` // user / assistant
	Text string `json:"text"`
}

// Snapshot is the triple of current financial aggregates included in
// every request.
type Snapshot struct {
	Balance  decimal.Decimal `json:"balance"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Generator produces text for a prompt. The production implementation
// calls Gemini; tests substitute their own.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func newGeminiGenerator(ctx context.Context, apiKey, model string) (*geminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// Gateway bridges the chat UI to the external service.
type Gateway struct {
	generator Generator
	timeout   time.Duration
}

// New builds a Gateway backed by Gemini. When no API key is configured
// the gateway still works: every request answers with the local fallback.
func New(ctx context.Context, cfg config.AssistantConfig, timeout time.Duration) (*Gateway, error) {
	if cfg.APIKey == "" {
		log.Printf("assistant: no API key configured, responses fall back to local summaries")
		return &Gateway{timeout: timeout}, nil
	}
	gen, err := newGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return nil, err
	}
	return &Gateway{generator: gen, timeout: timeout}, nil
}

// NewWithGenerator wires an explicit generator; used by tests and by
// callers that bring their own transport.
func NewWithGenerator(gen Generator, timeout time.Duration) *Gateway {
	return &Gateway{generator: gen, timeout: timeout}
}

// Advise sends the assembled prompt to the external service and returns
// its text. Any transport or service error is caught here and replaced by
// the local fallback; the boolean reports whether that happened. Errors
// never propagate to the caller.
func (g *Gateway) Advise(ctx context.Context, history []Message, snap Snapshot) (string, bool) {
	if g.generator == nil {
		return FallbackResponse(snap), true
	}

	prompt := buildPrompt(history, snap)

	timeout := g.timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := g.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("assistant: external call failed, using fallback: %v", err)
		return FallbackResponse(snap), true
	}
	return text, false
}

// buildPrompt flattens the instruction preamble, the financial snapshot
// and the prior conversation into one prompt.
func buildPrompt(history []Message, snap Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are the intelligent financial assistant of the FinanceFlow app.
You have access to the following financial data of the user:
- Current balance: $%s
- Monthly income: $%s
- Monthly expenses: $%s

Provide personalized financial advice and help answer questions about
budgets, spending, investments and financial planning. Be specific about
the amounts and always consider the user's current financial situation
when making recommendations.

Important formatting rules:
1. Your answers must be CONCISE and DIRECT.
2. Use clear headings formatted with ### to organize your answers.
3. Prefer bullet points (%s) to list information.
4. Do not use emojis or unnecessary special characters.
5. Avoid very long sentences. Be objective.
6. Limit your answers to at most 3 sections.
7. Keep explanations simple and practical.
`,
		snap.Balance.StringFixed(2),
		snap.Income.StringFixed(2),
		snap.Expenses.StringFixed(2),
		"•",
	)

	b.WriteString("\n")
	for _, msg := range history {
		speaker := "Assistant"
		if msg.Role == RoleUser {
			speaker = "User"
		}
		fmt.Fprintf(&b, "%s: %s\n", speaker, msg.Text)
	}
	return b.String()
}
