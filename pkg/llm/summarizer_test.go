package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsbrief/pkg/config"
	"github.com/umputun/newsbrief/pkg/domain"
)

func TestSummarizer_NoKey(t *testing.T) {
	s := NewSummarizer(config.LLMConfig{})
	items := []domain.Article{{Title: "A", Summary: "B"}}
	style := domain.Style{Tone: "formal"}

	first := s.Summarize(context.Background(), items, style)
	second := s.Summarize(context.Background(), items, style)
	assert.Equal(t, domain.Summary{Text: "- A: B"}, first)
	assert.Equal(t, first, second)
}

func TestFallbackSummary(t *testing.T) {
	items := []domain.Article{
		{Title: "First", Summary: "one"},
		{Title: "Second"},
		{Title: "Third", URL: "https://example.com", Summary: "three"},
	}
	assert.Equal(t, "- First: one\n- Second: No summary available\n- Third: three", FallbackSummary(items))
	assert.Empty(t, FallbackSummary(nil))
}

func TestSummarizer_ResponsesShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/responses", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model string `json:"model"`
			Input string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Contains(t, req.Input, "Tone: formal. Interaction style: detailed. Format: paragraphs. Language: Spanish.")
		assert.Contains(t, req.Input, `"url":"https://example.com/a"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":[{"type":"message","content":[{"type":"output_text","text":"Resumen de noticias"}]}]}`))
	}))
	defer server.Close()

	s := NewSummarizer(config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key"})
	res := s.Summarize(context.Background(), []domain.Article{{Title: "A", URL: "https://example.com/a"}},
		domain.Style{Interaction: "detailed", Format: "paragraphs", Language: "Spanish", Tone: "formal"})
	assert.Equal(t, domain.Summary{Text: "Resumen de noticias"}, res)
}

func TestSummarizer_ChatShapeFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"chat text"}}]}`))
	}))
	defer server.Close()

	s := NewSummarizer(config.LLMConfig{Endpoint: server.URL, APIKey: "k"})
	res := s.Summarize(context.Background(), nil, domain.Style{})
	assert.Equal(t, "chat text", res.Text)
	assert.Empty(t, res.Warning)
}

func TestSummarizer_UnknownShapeIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"resp_1","output":[]}`))
	}))
	defer server.Close()

	s := NewSummarizer(config.LLMConfig{Endpoint: server.URL, APIKey: "k"})
	res := s.Summarize(context.Background(), []domain.Article{{Title: "A", Summary: "B"}}, domain.Style{})
	assert.Equal(t, domain.Summary{}, res)
}

func TestSummarizer_FailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		warning string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			},
			warning: "500",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`not json`))
			},
			warning: "summary request",
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			},
			warning: "summary request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			}))
			defer server.Close()

			s := NewSummarizer(config.LLMConfig{Endpoint: server.URL, APIKey: "k", SummaryTimeout: 50 * time.Millisecond})
			res := s.Summarize(context.Background(), []domain.Article{{Title: "A", Summary: "B"}}, domain.Style{})
			assert.Equal(t, "- A: B", res.Text)
			assert.Contains(t, res.Warning, tt.warning)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "a failed summary call is not retried")
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(nil, domain.Style{}.WithDefaults())
	assert.Contains(t, prompt, "Tone: neutral. Interaction style: concise. Format: bullet points. Language: English.")
	assert.Contains(t, prompt, "with citations to their URLs")
	assert.Contains(t, prompt, "[]")

	again := buildPrompt(nil, domain.Style{}.WithDefaults())
	assert.Equal(t, prompt, again)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		err  bool
	}{
		{name: "responses shape", body: `{"output":[{"content":[{"text":"primary"}]}]}`, want: "primary"},
		{name: "primary wins", body: `{"output":[{"content":[{"text":"primary"}]}],"choices":[{"message":{"content":"secondary"}}]}`, want: "primary"},
		{name: "empty primary uses secondary", body: `{"output":[{"content":[]}],"choices":[{"message":{"content":"secondary"}}]}`, want: "secondary"},
		{name: "neither", body: `{"foo":"bar"}`, want: ""},
		{name: "wrong field type", body: `{"output":"x","choices":[{"message":{"content":"secondary"}}]}`, want: "secondary"},
		{name: "not json", body: `oops`, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractText([]byte(tt.body))
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
