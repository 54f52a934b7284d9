package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/invopop/jsonschema"
)

// recognized preference keys
const (
	PrefTone        = "tone"
	PrefFormat      = "format"
	PrefLanguage    = "language"
	PrefInteraction = "interaction"
	PrefTopics      = "topics"
)

// PreferenceKeys lists the recognized keys in canonical onboarding order
var PreferenceKeys = []string{PrefTone, PrefFormat, PrefLanguage, PrefInteraction, PrefTopics}

// Topics is the topics preference. It keeps the shape it was supplied in,
// either a single value or a list, and callers normalize with List.
type Topics struct {
	single string
	many   []string
	isList bool
}

// SingleTopic makes a single-valued topics preference
func SingleTopic(s string) Topics {
	return Topics{single: s}
}

// TopicList makes a list-valued topics preference
func TopicList(items ...string) Topics {
	return Topics{many: slices.Clone(items), isList: true}
}

// IsList reports whether topics were supplied as a list
func (t Topics) IsList() bool { return t.isList }

// IsSet reports whether topics hold a non-empty value
func (t Topics) IsSet() bool {
	if t.isList {
		return len(t.many) > 0
	}
	return t.single != ""
}

// Single returns the single value, empty for list topics
func (t Topics) Single() string { return t.single }

// List normalizes topics to a list. A single value becomes a one-element list.
func (t Topics) List() []string {
	if t.isList {
		return slices.Clone(t.many)
	}
	if t.single == "" {
		return nil
	}
	return []string{t.single}
}

// MarshalJSON encodes topics in their original shape
func (t Topics) MarshalJSON() ([]byte, error) {
	if t.isList {
		if t.many == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(t.many)
	}
	return json.Marshal(t.single)
}

// UnmarshalJSON accepts a string or a list of strings
func (t *Topics) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var many []string
		if err := json.Unmarshal(data, &many); err != nil {
			return fmt.Errorf("topics must be a string or a list of strings: %w", err)
		}
		*t = TopicList(many...)
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("topics must be a string or a list of strings: %w", err)
	}
	*t = SingleTopic(single)
	return nil
}

// JSONSchema describes topics for tool parameter schemas
func (Topics) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Description: "news topics, a list or a comma-separated string",
	}
}

// Preferences is the per-turn preference snapshot. Unrecognized keys supplied by the
// caller are kept in Extra and returned untouched.
type Preferences struct {
	Tone        string
	Format      string
	Language    string
	Interaction string
	Topics      Topics
	Extra       map[string]json.RawMessage
}

// Style returns the style part of preferences with defaults for unset fields
func (p Preferences) Style() Style {
	return Style{Interaction: p.Interaction, Format: p.Format, Language: p.Language, Tone: p.Tone}.WithDefaults()
}

// IsSet reports whether a recognized key has a non-empty value
func (p Preferences) IsSet(key string) bool {
	switch key {
	case PrefTone:
		return p.Tone != ""
	case PrefFormat:
		return p.Format != ""
	case PrefLanguage:
		return p.Language != ""
	case PrefInteraction:
		return p.Interaction != ""
	case PrefTopics:
		return p.Topics.IsSet()
	}
	return false
}

// Clone makes a deep copy
func (p Preferences) Clone() Preferences {
	res := p
	res.Topics = p.Topics
	res.Topics.many = slices.Clone(p.Topics.many)
	if p.Extra != nil {
		res.Extra = maps.Clone(p.Extra)
	}
	return res
}

// MarshalJSON encodes preferences as a flat object. Unset recognized keys are omitted.
func (p Preferences) MarshalJSON() ([]byte, error) {
	res := make(map[string]any, len(p.Extra)+len(PreferenceKeys))
	for k, v := range p.Extra {
		res[k] = v
	}
	texts := map[string]string{PrefTone: p.Tone, PrefFormat: p.Format, PrefLanguage: p.Language, PrefInteraction: p.Interaction}
	for k, v := range texts {
		if v != "" {
			res[k] = v
		}
	}
	if p.Topics.IsSet() {
		res[PrefTopics] = p.Topics
	}
	return json.Marshal(res)
}

// UnmarshalJSON decodes a flat preference object. Recognized text keys must be strings or null.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("preferences must be an object: %w", err)
	}

	res := Preferences{}
	texts := map[string]*string{PrefTone: &res.Tone, PrefFormat: &res.Format, PrefLanguage: &res.Language, PrefInteraction: &res.Interaction}
	for k, v := range raw {
		isNull := bytes.Equal(bytes.TrimSpace(v), []byte("null"))
		if dst, ok := texts[k]; ok {
			if isNull {
				continue
			}
			if err := json.Unmarshal(v, dst); err != nil {
				return fmt.Errorf("preference %q must be a string", k)
			}
			continue
		}
		if k == PrefTopics {
			if isNull {
				continue
			}
			if err := json.Unmarshal(v, &res.Topics); err != nil {
				return err
			}
			continue
		}
		if res.Extra == nil {
			res.Extra = map[string]json.RawMessage{}
		}
		res.Extra[k] = v
	}
	*p = res
	return nil
}
