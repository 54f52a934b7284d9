package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsbrief/pkg/config"
	"github.com/umputun/newsbrief/pkg/search"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: tmpFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_ServerStartStop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wd, err := os.Getwd()
	require.NoError(t, err)
	opts := Opts{Config: wd + "/testdata/test_config.yml"}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- run(ctx, opts)
	}()

	// wait for server to start
	time.Sleep(500 * time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:18765/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "pong", string(body))

	// no credentials configured, the first turn asks the first onboarding question
	chatResp, err := http.Post("http://127.0.0.1:18765/chat", "application/json",
		strings.NewReader(`{"messages":[{"role":"user","content":"hello"}]}`))
	require.NoError(t, err)
	defer chatResp.Body.Close()
	require.Equal(t, http.StatusOK, chatResp.StatusCode)

	var chat struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.NewDecoder(chatResp.Body).Decode(&chat))
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "assistant", chat.Messages[1].Role)
	assert.Equal(t, "Preferred Tone of Voice (e.g., formal, casual, enthusiastic)?", chat.Messages[1].Content)

	cancel()
	select {
	case err := <-serverErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Error("Server shutdown timeout")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := loadConfig(Opts{})
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, config.ProviderExa, cfg.Search.Provider)
		assert.Empty(t, cfg.LLM.APIKey)
	})

	t.Run("cli overrides", func(t *testing.T) {
		cfg, err := loadConfig(Opts{Config: "testdata/test_config.yml", Listen: ":9999", ExaKey: "exa-key", OpenAIKey: "oai-key"})
		require.NoError(t, err)
		assert.Equal(t, ":9999", cfg.Server.Listen)
		assert.Equal(t, "exa-key", cfg.Search.APIKey)
		assert.Equal(t, "oai-key", cfg.LLM.APIKey)
		assert.Equal(t, 3, cfg.Search.ResultsPerTopic)
		assert.Equal(t, 2, cfg.Agent.TopicWorkers)
	})
}

func TestNewSearcher(t *testing.T) {
	cfg := config.Default().GetSearchConfig()
	assert.IsType(t, &search.Exa{}, newSearcher(cfg))

	cfg.Provider = config.ProviderRSS
	assert.IsType(t, &search.RSS{}, newSearcher(cfg))
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		setupLog(true, false)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		setupLog(false, false)
	})

	t.Run("with secrets", func(t *testing.T) {
		setupLog(true, false, "secret1", "", "secret2")
	})

	t.Run("no color mode", func(t *testing.T) {
		setupLog(false, true)
	})
}
