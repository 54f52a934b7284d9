package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/invopop/jsonschema"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsbrief/pkg/domain"
	"github.com/umputun/newsbrief/pkg/preference"
)

// tool names exposed to the reasoning model
const (
	toolFetchNews       = "fetch_news"
	toolSummarizeNews   = "summarize_news"
	toolSavePreferences = "save_preferences"
)

// toolHandler runs a tool call and returns a JSON-encodable result. Failures are results too.
type toolHandler func(ctx context.Context, t *turn, args json.RawMessage) any

type tool struct {
	def    openai.FunctionDefinition
	handle toolHandler
}

// registry maps tool names to handlers, keeping registration order for the schema list
type registry struct {
	order []string
	tools map[string]tool
}

type fetchArgs struct {
	Topic      string `json:"topic" jsonschema:"description=news topic to search for"`
	NumResults int    `json:"num_results,omitempty" jsonschema:"minimum=1,maximum=10,description=number of articles to fetch (default 5)"`
}

type summarizeArgs struct {
	Items    []domain.Article `json:"items" jsonschema:"description=articles returned by fetch_news"`
	Style    string           `json:"style,omitempty" jsonschema:"description=interaction style, defaults to the stored preference"`
	Format   string           `json:"format,omitempty" jsonschema:"description=response format, defaults to the stored preference"`
	Language string           `json:"language,omitempty" jsonschema:"description=response language, defaults to the stored preference"`
	Tone     string           `json:"tone,omitempty" jsonschema:"description=tone of voice, defaults to the stored preference"`
}

func (o *Orchestrator) newRegistry() *registry {
	r := &registry{tools: map[string]tool{}}
	r.register(toolFetchNews, "Fetch latest news articles for a topic", fetchArgs{}, o.fetchNews)
	r.register(toolSummarizeNews, "Summarize a list of news items, respecting preferences", summarizeArgs{}, o.summarizeNews)
	r.register(toolSavePreferences, "Save user preferences (tone, format, language, interaction, topics).",
		preference.Update{}, o.savePreferences)
	return r
}

func (r *registry) register(name, description string, args any, handle toolHandler) {
	r.order = append(r.order, name)
	r.tools[name] = tool{
		def:    openai.FunctionDefinition{Name: name, Description: description, Parameters: paramsSchema(args)},
		handle: handle,
	}
}

// definitions returns the tool schema list sent to the model
func (r *registry) definitions() []openai.Tool {
	res := make([]openai.Tool, 0, len(r.order))
	for _, name := range r.order {
		def := r.tools[name].def
		res = append(res, openai.Tool{Type: openai.ToolTypeFunction, Function: &def})
	}
	return res
}

// dispatch runs the named tool. Unknown names are reported as an error result.
func (r *registry) dispatch(ctx context.Context, t *turn, name, args string) any {
	tl, ok := r.tools[name]
	if !ok {
		lgr.Printf("[WARN] turn %s model requested unknown tool %q", t.id, name)
		return errorResult("Unknown tool " + name)
	}
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	lgr.Printf("[DEBUG] turn %s calling %s %s", t.id, name, args)
	return tl.handle(ctx, t, json.RawMessage(args))
}

func (o *Orchestrator) fetchNews(ctx context.Context, t *turn, raw json.RawMessage) any {
	var args fetchArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return invalidArgs(toolFetchNews, err)
	}
	if strings.TrimSpace(args.Topic) == "" {
		return invalidArgs(toolFetchNews, fmt.Errorf("topic is required"))
	}
	articles, err := o.searcher.Fetch(ctx, args.Topic, args.NumResults)
	if err != nil {
		lgr.Printf("[WARN] turn %s fetch for %q failed: %v", t.id, args.Topic, err)
		return errorResult(err.Error())
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return map[string]any{"results": articles}
}

func (o *Orchestrator) summarizeNews(ctx context.Context, t *turn, raw json.RawMessage) any {
	var args summarizeArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return invalidArgs(toolSummarizeNews, err)
	}
	// omitted style fields come from the preferences as they are at call time
	style := domain.Style{Interaction: args.Style, Format: args.Format, Language: args.Language, Tone: args.Tone}
	if style.Interaction == "" {
		style.Interaction = t.prefs.Interaction
	}
	if style.Format == "" {
		style.Format = t.prefs.Format
	}
	if style.Language == "" {
		style.Language = t.prefs.Language
	}
	if style.Tone == "" {
		style.Tone = t.prefs.Tone
	}
	return o.summarizer.Summarize(ctx, args.Items, style.WithDefaults())
}

func (o *Orchestrator) savePreferences(_ context.Context, t *turn, raw json.RawMessage) any {
	var upd preference.Update
	if err := json.Unmarshal(raw, &upd); err != nil {
		return invalidArgs(toolSavePreferences, err)
	}
	t.prefs = preference.Apply(t.prefs, upd)
	lgr.Printf("[DEBUG] turn %s preferences saved: %s", t.id, prefsJSON(t.prefs))
	return map[string]any{"ok": true, "preferences": t.prefs}
}

func errorResult(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func invalidArgs(name string, err error) map[string]string {
	return errorResult(fmt.Sprintf("invalid arguments for %s: %v", name, err))
}

func encodeResult(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data, _ = json.Marshal(errorResult("encode tool result: " + err.Error()))
	}
	return string(data)
}

// paramsSchema reflects an argument struct into an inline JSON schema
func paramsSchema(v any) *jsonschema.Schema {
	r := &jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true, Anonymous: true}
	s := r.Reflect(v)
	s.Version = ""
	return s
}
