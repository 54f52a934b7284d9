package llm

import (
	"encoding/json"
	"fmt"
)

// responseShape is one known layout of a completion payload
type responseShape interface {
	text() string
}

// responsesShape is the responses endpoint layout, output[0].content[0].text
type responsesShape struct {
	Output []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (r *responsesShape) text() string {
	if len(r.Output) == 0 || len(r.Output[0].Content) == 0 {
		return ""
	}
	return r.Output[0].Content[0].Text
}

// chatShape is the chat completions layout, choices[0].message.content
type chatShape struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *chatShape) text() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Message.Content
}

// extractText tries the known shapes in priority order. A body matching neither yields empty text.
func extractText(body []byte) (string, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}

	for _, shape := range []responseShape{&responsesShape{}, &chatShape{}} {
		if err := json.Unmarshal(body, shape); err != nil {
			continue // field of an unexpected type, try the next layout
		}
		if t := shape.text(); t != "" {
			return t, nil
		}
	}
	return "", nil
}
