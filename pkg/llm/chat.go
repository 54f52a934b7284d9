package llm

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/newsbrief/pkg/config"
)

// NewChatClient creates the OpenAI client driving the tool-calling dialogue
func NewChatClient(cfg config.LLMConfig) *openai.Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(clientConfig)
}
