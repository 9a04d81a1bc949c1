package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"statement-chat/internal/analysis"
	"statement-chat/internal/currencyutils"
	"statement-chat/internal/models"
)

// AIClient answers free-text questions the rule-based dispatcher could not
// match. The abstraction keeps the dispatcher testable without external API
// calls.
type AIClient interface {
	Answer(ctx context.Context, question string, stmt *models.Statement) (string, error)
}

// GeminiClient implements AIClient against the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient creates a GeminiClient with the given API key and model
// name.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Answer asks the model the user's question alongside a compact summary of
// the statement. The statement rows themselves are not sent.
func (c *GeminiClient) Answer(ctx context.Context, question string, stmt *models.Statement) (string, error) {
	prompt := fmt.Sprintf(`You are answering a question about a bank statement.
Statement summary:
%s

Question: %s

Answer in one or two short sentences using only the summary above.`,
		summarize(stmt), question)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}

// summarize renders the aggregates the model is allowed to reason over.
func summarize(stmt *models.Statement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Transactions: %d\n", stmt.Len())
	fmt.Fprintf(&b, "Total debit: %s\n", currencyutils.FormatAmount(analysis.TotalDebit(stmt)))
	fmt.Fprintf(&b, "Total credit: %s\n", currencyutils.FormatAmount(analysis.TotalCredit(stmt)))

	if top := analysis.TopDebits(stmt, topGroups); len(top) > 0 {
		b.WriteString("Top debit references:\n")
		for _, t := range top {
			fmt.Fprintf(&b, "  %s: %s\n", t.Label, currencyutils.FormatAmount(t.Amount))
		}
	}
	if top := analysis.TopCredits(stmt, topGroups); len(top) > 0 {
		b.WriteString("Top credit references:\n")
		for _, t := range top {
			fmt.Fprintf(&b, "  %s: %s\n", t.Label, currencyutils.FormatAmount(t.Amount))
		}
	}
	return b.String()
}

// MockAIClient implements AIClient for tests.
type MockAIClient struct {
	Response string
	Err      error

	// Questions records what was asked, for assertions.
	Questions []string
}

// Answer returns the predefined response or error.
func (m *MockAIClient) Answer(ctx context.Context, question string, stmt *models.Statement) (string, error) {
	m.Questions = append(m.Questions, question)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
