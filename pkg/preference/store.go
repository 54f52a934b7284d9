// Package preference merges preference updates and drives onboarding order.
// All functions are pure: inputs are never modified.
package preference

import (
	"strings"

	"github.com/umputun/newsbrief/pkg/domain"
)

// Update is a partial preference record. Nil fields are left untouched by Apply.
// It doubles as the argument type of the save_preferences tool.
type Update struct {
	Tone        *string        `json:"tone,omitempty" jsonschema:"description=preferred tone of voice"`
	Format      *string        `json:"format,omitempty" jsonschema:"description=preferred response format"`
	Language    *string        `json:"language,omitempty" jsonschema:"description=preferred response language"`
	Interaction *string        `json:"interaction,omitempty" jsonschema:"description=interaction style such as concise or detailed"`
	Topics      *domain.Topics `json:"topics,omitempty"`
}

var questions = map[string]string{
	domain.PrefTone:        "Preferred Tone of Voice (e.g., formal, casual, enthusiastic)?",
	domain.PrefFormat:      "Preferred Response Format (e.g., bullet points, paragraphs)?",
	domain.PrefLanguage:    "Language Preference (e.g., English, Spanish)?",
	domain.PrefInteraction: "Interaction Style (e.g., concise, detailed)?",
	domain.PrefTopics:      "Preferred News Topics (e.g., technology, sports, politics)?",
}

// question returns the onboarding question for a recognized key
func question(key string) (string, bool) {
	q, ok := questions[key]
	return q, ok
}

// Apply merges upd into current and returns the result. A topics string containing
// commas is split into a trimmed list of non-empty tokens, any other shape is stored as given.
func Apply(current domain.Preferences, upd Update) domain.Preferences {
	res := current.Clone()
	if upd.Tone != nil {
		res.Tone = *upd.Tone
	}
	if upd.Format != nil {
		res.Format = *upd.Format
	}
	if upd.Language != nil {
		res.Language = *upd.Language
	}
	if upd.Interaction != nil {
		res.Interaction = *upd.Interaction
	}
	if upd.Topics != nil {
		res.Topics = normalizeTopics(*upd.Topics)
	}
	return res
}

// IsComplete reports whether every recognized key is set
func IsComplete(p domain.Preferences) bool {
	_, missing := NextMissingQuestion(p)
	return !missing
}

// NextMissingQuestion returns the question for the first unset key in canonical order
// tone, format, language, interaction, topics. The bool is false when nothing is missing.
func NextMissingQuestion(p domain.Preferences) (string, bool) {
	for _, key := range domain.PreferenceKeys {
		if p.IsSet(key) {
			continue
		}
		if q, ok := question(key); ok {
			return q, true
		}
	}
	return "", false
}

func normalizeTopics(t domain.Topics) domain.Topics {
	if t.IsList() {
		return domain.TopicList(t.List()...)
	}
	if !strings.Contains(t.Single(), ",") {
		return t
	}
	var res []string
	for _, s := range strings.Split(t.Single(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			res = append(res, s)
		}
	}
	return domain.TopicList(res...)
}
