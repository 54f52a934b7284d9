package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		isList  bool
		list    []string
		wantErr bool
	}{
		{name: "single", input: `"tech"`, list: []string{"tech"}},
		{name: "list", input: `["tech","sports"]`, isList: true, list: []string{"tech", "sports"}},
		{name: "empty list", input: `[]`, isList: true, list: []string{}},
		{name: "number", input: `5`, wantErr: true},
		{name: "mixed list", input: `["tech",1]`, wantErr: true},
		{name: "object", input: `{"a":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var topics Topics
			err := json.Unmarshal([]byte(tt.input), &topics)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "topics must be a string or a list of strings")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.isList, topics.IsList())
			if len(tt.list) == 0 {
				assert.Empty(t, topics.List())
			} else {
				assert.Equal(t, tt.list, topics.List())
			}

			// shape survives a round trip
			data, err := json.Marshal(topics)
			require.NoError(t, err)
			assert.JSONEq(t, tt.input, string(data))
		})
	}
}

func TestPreferences_UnmarshalJSON(t *testing.T) {
	t.Run("recognized and extra keys", func(t *testing.T) {
		var p Preferences
		err := json.Unmarshal([]byte(`{"tone":"formal","topics":"tech","language":null,"timezone":"UTC","limits":{"n":3}}`), &p)
		require.NoError(t, err)
		assert.Equal(t, "formal", p.Tone)
		assert.Empty(t, p.Language)
		assert.Equal(t, "tech", p.Topics.Single())
		assert.False(t, p.IsSet(PrefLanguage))
		assert.True(t, p.IsSet(PrefTopics))
		assert.JSONEq(t, `"UTC"`, string(p.Extra["timezone"]))
		assert.JSONEq(t, `{"n":3}`, string(p.Extra["limits"]))
	})

	t.Run("non-string text preference", func(t *testing.T) {
		var p Preferences
		err := json.Unmarshal([]byte(`{"tone":5}`), &p)
		require.EqualError(t, err, `preference "tone" must be a string`)
	})

	t.Run("bad topics", func(t *testing.T) {
		var p Preferences
		require.Error(t, json.Unmarshal([]byte(`{"topics":{"a":1}}`), &p))
	})

	t.Run("not an object", func(t *testing.T) {
		var p Preferences
		require.Error(t, json.Unmarshal([]byte(`["tone"]`), &p))
	})
}

func TestPreferences_MarshalJSON(t *testing.T) {
	p := Preferences{
		Tone:   "formal",
		Topics: TopicList("tech", "sports"),
		Extra:  map[string]json.RawMessage{"timezone": json.RawMessage(`"UTC"`)},
	}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tone":"formal","topics":["tech","sports"],"timezone":"UTC"}`, string(data))

	data, err = json.Marshal(Preferences{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	var back Preferences
	require.NoError(t, json.Unmarshal([]byte(`{"interaction":"concise","topics":"ai","x":[1,2]}`), &back))
	data, err = json.Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, `{"interaction":"concise","topics":"ai","x":[1,2]}`, string(data))
}

func TestPreferences_Style(t *testing.T) {
	assert.Equal(t, Style{Interaction: "concise", Format: "bullet points", Language: "English", Tone: "neutral"},
		Preferences{}.Style())
	assert.Equal(t, Style{Interaction: "detailed", Format: "bullet points", Language: "Spanish", Tone: "neutral"},
		Preferences{Interaction: "detailed", Language: "Spanish"}.Style())
}

func TestPreferences_Clone(t *testing.T) {
	p := Preferences{Topics: TopicList("a", "b"), Extra: map[string]json.RawMessage{"k": json.RawMessage(`1`)}}
	c := p.Clone()
	c.Extra["k"] = json.RawMessage(`2`)
	c.Topics.many[0] = "z"
	assert.Equal(t, `1`, string(p.Extra["k"]))
	assert.Equal(t, []string{"a", "b"}, p.Topics.List())
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAssistant, RoleSystem, RoleTool} {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("bot").Valid())
	assert.False(t, Role("").Valid())
}
