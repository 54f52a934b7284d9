package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	osdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"github.com/umputun/newsbrief/pkg/config"
	"github.com/umputun/newsbrief/pkg/domain"
)

// Summarizer turns articles into prose with the OpenAI responses endpoint.
// It never fails: without a key, or when the call fails, it renders a bullet list locally.
type Summarizer struct {
	apiKey string
	model  string
	client osdk.Client
}

// NewSummarizer creates a summarizer from LLM configuration. An empty API key selects the local rendering.
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	timeout := cfg.SummaryTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1"
	}
	model := cfg.SummaryModel
	if model == "" {
		model = "gpt-4o-mini"
	}
	client := osdk.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(endpoint),
		option.WithHTTPClient(&http.Client{Timeout: timeout}),
		option.WithMaxRetries(0),
	)
	return &Summarizer{apiKey: cfg.APIKey, model: model, client: client}
}

// Summarize summarizes items in the requested style
func (s *Summarizer) Summarize(ctx context.Context, items []domain.Article, style domain.Style) domain.Summary {
	if s.apiKey == "" {
		return domain.Summary{Text: FallbackSummary(items)}
	}

	text, err := s.complete(ctx, buildPrompt(items, style.WithDefaults()))
	if err != nil {
		lgr.Printf("[WARN] summary request failed, using local rendering: %v", err)
		return domain.Summary{Text: FallbackSummary(items), Warning: err.Error()}
	}
	return domain.Summary{Text: text}
}

// FallbackSummary renders items as "- title: summary" lines
func FallbackSummary(items []domain.Article) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		summary := it.Summary
		if summary == "" {
			summary = "No summary available"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", it.Title, summary))
	}
	return strings.Join(lines, "\n")
}

// buildPrompt creates the summarization instruction with the serialized items appended
func buildPrompt(items []domain.Article, style domain.Style) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant summarizing news articles.\n")
	sb.WriteString(fmt.Sprintf("Tone: %s. Interaction style: %s. Format: %s. Language: %s.\n",
		style.Tone, style.Interaction, style.Format, style.Language))
	sb.WriteString("Summarize the following news items with citations to their URLs. Keep it factual and recent.\n")
	if items == nil {
		items = []domain.Article{}
	}
	data, err := json.Marshal(items)
	if err != nil { // articles hold plain strings only
		data = []byte("[]")
	}
	sb.Write(data)
	return sb.String()
}

// complete sends a single prompt and extracts the returned text from the raw response
func (s *Summarizer) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: s.model,
		Input: responses.ResponseNewParamsInputUnion{OfString: osdk.String(prompt)},
	})
	if err != nil {
		return "", fmt.Errorf("summary request: %w", err)
	}
	return extractText([]byte(resp.RawJSON()))
}
