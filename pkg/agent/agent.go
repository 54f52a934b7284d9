// Package agent runs one dialogue turn. Without a reasoning model it collects preferences
// with fixed questions and then fetches and summarizes news per topic. With a model it
// exposes fetch_news, summarize_news and save_preferences as tools and loops until
// the model answers with text.
package agent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsbrief/pkg/domain"
)

//go:generate moq -out mocks/searcher.go -pkg mocks -skip-ensure -fmt goimports . Searcher
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer
//go:generate moq -out mocks/chat_client.go -pkg mocks -skip-ensure -fmt goimports . ChatClient

// Searcher fetches recent articles about a topic
type Searcher interface {
	Fetch(ctx context.Context, topic string, count int) ([]domain.Article, error)
}

// Summarizer turns articles into text. It never fails.
type Summarizer interface {
	Summarize(ctx context.Context, items []domain.Article, style domain.Style) domain.Summary
}

// ChatClient is the reasoning model used in delegated mode
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Mode is the operating mode, fixed when the orchestrator is created
type Mode string

// operating modes
const (
	ModeDeterministic Mode = "deterministic"
	ModeDelegated     Mode = "delegated"
)

// Config holds orchestrator dependencies and limits
type Config struct {
	Searcher        Searcher
	Summarizer      Summarizer
	Chat            ChatClient // nil selects the deterministic mode
	Model           string
	Temperature     float64
	SystemPrompt    string
	MaxIterations   int // model round-trips per turn in delegated mode
	ResultsPerTopic int
	TopicWorkers    int
}

// Orchestrator decides the next action for a turn and drives the adapters.
// It keeps no state between turns and is safe for concurrent use.
type Orchestrator struct {
	searcher        Searcher
	summarizer      Summarizer
	chat            ChatClient
	model           string
	temperature     float32
	systemPrompt    string
	maxIterations   int
	resultsPerTopic int
	topicWorkers    int
	tools           *registry
}

// Reply is the outcome of a turn
type Reply struct {
	Message     string
	Preferences domain.Preferences
}

// New creates an orchestrator
func New(cfg Config) *Orchestrator {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 10
	}
	if cfg.ResultsPerTopic <= 0 {
		cfg.ResultsPerTopic = 5
	}
	if cfg.TopicWorkers <= 0 {
		cfg.TopicWorkers = 1
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = defaultSystemPrompt
	}
	o := &Orchestrator{
		searcher:        cfg.Searcher,
		summarizer:      cfg.Summarizer,
		chat:            cfg.Chat,
		model:           cfg.Model,
		temperature:     float32(cfg.Temperature),
		systemPrompt:    cfg.SystemPrompt,
		maxIterations:   cfg.MaxIterations,
		resultsPerTopic: cfg.ResultsPerTopic,
		topicWorkers:    cfg.TopicWorkers,
	}
	o.tools = o.newRegistry()
	return o
}

// Mode reports the operating mode
func (o *Orchestrator) Mode() Mode {
	if o.chat == nil {
		return ModeDeterministic
	}
	return ModeDelegated
}

// turn is the mutable state of a single turn
type turn struct {
	id    string
	prefs domain.Preferences
}

// Respond runs one turn over the transcript and preference snapshot. It always produces text,
// failures of the adapters or of the model end up in the message.
func (o *Orchestrator) Respond(ctx context.Context, messages []domain.Message, prefs domain.Preferences) Reply {
	t := &turn{id: uuid.NewString(), prefs: prefs.Clone()}
	started := time.Now()
	lgr.Printf("[DEBUG] turn %s started, mode %s, %d messages", t.id, o.Mode(), len(messages))

	var text string
	if o.chat == nil {
		text = o.respondDeterministic(ctx, t)
	} else {
		text = o.respondDelegated(ctx, t, messages)
	}

	lgr.Printf("[INFO] turn %s completed in %v, reply %d chars", t.id, time.Since(started), len(text))
	return Reply{Message: text, Preferences: t.prefs}
}

func prefsJSON(p domain.Preferences) string {
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}
