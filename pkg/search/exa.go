package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsbrief/pkg/domain"
)

const summaryQuery = "Summarize the article in 3 bullet points"

// Exa searches news with the Exa search API
type Exa struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// ExaParams configures the Exa client
type ExaParams struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// NewExa creates an Exa search client. An empty key is allowed, Fetch reports it per call.
func NewExa(params ExaParams) *Exa {
	if params.Timeout == 0 {
		params.Timeout = 20 * time.Second
	}
	if params.Endpoint == "" {
		params.Endpoint = "https://api.exa.ai"
	}
	return &Exa{
		endpoint: strings.TrimSuffix(params.Endpoint, "/"),
		apiKey:   params.APIKey,
		client:   &http.Client{Timeout: params.Timeout},
	}
}

type exaRequest struct {
	Query      string `json:"query"`
	NumResults int    `json:"numResults"`
	Text       bool   `json:"text"`
	Summary    struct {
		Query string `json:"query"`
	} `json:"summary"`
}

type exaResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Summary       string `json:"summary"`
		PublishedDate string `json:"publishedDate"`
	} `json:"results"`
}

// Fetch returns up to count recent articles about topic. Empty results are not an error.
func (e *Exa) Fetch(ctx context.Context, topic string, count int) ([]domain.Article, error) {
	if e.apiKey == "" {
		return nil, ErrMissingKey
	}
	count = ClampCount(count)

	reqBody := exaRequest{Query: Query(topic), NumResults: count, Text: true}
	reqBody.Summary.Query = summaryQuery
	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &TransportError{Provider: "exa", Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/search", bytes.NewReader(data))
	if err != nil {
		return nil, &TransportError{Provider: "exa", Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("x-api-key", e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: "exa", Err: fmt.Errorf("exa search for %q: %w", topic, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &TransportError{Provider: "exa",
			Err: fmt.Errorf("exa search for %q: unexpected status %d: %s", topic, resp.StatusCode, strings.TrimSpace(string(body)))}
	}

	var parsed exaResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &TransportError{Provider: "exa", Err: fmt.Errorf("decode exa response: %w", err)}
	}

	results := parsed.Results
	if len(results) > count {
		results = results[:count]
	}
	articles := make([]domain.Article, 0, len(results))
	for _, r := range results {
		articles = append(articles, domain.Article{
			Title:         plainText(r.Title),
			URL:           strings.TrimSpace(r.URL),
			Summary:       plainText(r.Summary),
			PublishedDate: r.PublishedDate,
		})
	}
	lgr.Printf("[DEBUG] exa returned %d articles for %q in %v", len(articles), topic, time.Since(started))
	return articles, nil
}
