package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsbrief/pkg/domain"
)

// respondDelegated lets the reasoning model drive the turn. Each round sends the whole
// transcript, executes requested tools in order and reports the updated preferences.
// The loop stops on a text answer, on a failed model call or after maxIterations rounds.
func (o *Orchestrator) respondDelegated(ctx context.Context, t *turn, history []domain.Message) string {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: o.systemPrompt})
	for _, m := range history {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: "Current preferences JSON: " + prefsJSON(t.prefs),
	})

	var lastText string
	for i := 0; i < o.maxIterations; i++ {
		resp, err := o.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       o.model,
			Temperature: o.temperature,
			Messages:    msgs,
			Tools:       o.tools.definitions(),
			ToolChoice:  "auto",
		})
		if err != nil {
			lgr.Printf("[WARN] turn %s model call %d failed: %v", t.id, i+1, err)
			return modelErrorMessage(err)
		}
		if len(resp.Choices) == 0 {
			lgr.Printf("[WARN] turn %s model returned no choices", t.id)
			return ""
		}

		reply := resp.Choices[0].Message
		if len(reply.ToolCalls) == 0 {
			lgr.Printf("[DEBUG] turn %s answered after %d model calls", t.id, i+1)
			return reply.Content
		}
		if reply.Content != "" {
			lastText = reply.Content
		}

		lgr.Printf("[DEBUG] turn %s model requested %d tool calls", t.id, len(reply.ToolCalls))
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			Content:   reply.Content,
			ToolCalls: reply.ToolCalls,
		})
		for _, tc := range reply.ToolCalls {
			result := o.tools.dispatch(ctx, t, tc.Function.Name, tc.Function.Arguments)
			msgs = append(msgs, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    encodeResult(result),
				ToolCallID: tc.ID,
			})
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: "Updated preferences JSON: " + prefsJSON(t.prefs),
		})
	}

	lgr.Printf("[WARN] turn %s hit the limit of %d model calls", t.id, o.maxIterations)
	if lastText != "" {
		return lastText
	}
	return fmt.Sprintf("I wasn't able to complete that request within %d steps. Please try again.", o.maxIterations)
}

// modelErrorMessage renders a failed model call as the assistant reply
func modelErrorMessage(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := fmt.Sprintf("OpenAI error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
		var details []string
		if apiErr.Type != "" {
			details = append(details, "type: "+apiErr.Type)
		}
		if apiErr.Code != nil && fmt.Sprint(apiErr.Code) != "" {
			details = append(details, fmt.Sprintf("code: %v", apiErr.Code))
		}
		if apiErr.Param != nil && *apiErr.Param != "" {
			details = append(details, "param: "+*apiErr.Param)
		}
		if len(details) > 0 {
			msg += " (" + strings.Join(details, ", ") + ")"
		}
		return msg
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("OpenAI error %d: %s", reqErr.HTTPStatusCode, strings.TrimSpace(reqErr.Error()))
	}
	return fmt.Sprintf("OpenAI request failed: %v", err)
}
