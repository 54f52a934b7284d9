package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// search providers
const (
	ProviderExa = "exa"
	ProviderRSS = "rss"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen      string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=90s,description=HTTP server timeout"`
		CORSOrigins []string      `yaml:"cors_origins" json:"cors_origins" jsonschema:"description=Allowed CORS origins (default is any)"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Search SearchConfig `yaml:"search" json:"search" jsonschema:"description=News search provider configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for the dialogue and summaries"`

	Agent struct {
		TopicWorkers int `yaml:"topic_workers" json:"topic_workers" jsonschema:"default=1,minimum=1,description=Topics fetched in parallel when no LLM key is set"`
	} `yaml:"agent" json:"agent" jsonschema:"description=Dialogue orchestration settings"`
}

// SearchConfig holds news search provider settings
type SearchConfig struct {
	Provider        string        `yaml:"provider" json:"provider" jsonschema:"default=exa,enum=exa,enum=rss,description=Search provider"`
	Endpoint        string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.exa.ai,description=Exa API endpoint"`
	APIKey          string        `yaml:"api_key" json:"api_key" jsonschema:"description=Exa API key (can use environment variable)"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Search request timeout"`
	ResultsPerTopic int           `yaml:"results_per_topic" json:"results_per_topic" jsonschema:"default=5,minimum=1,maximum=10,description=Articles fetched per topic"`
	RSSURL          string        `yaml:"rss_url" json:"rss_url" jsonschema:"description=RSS search URL template with {query} placeholder"`
}

// LLMConfig holds LLM settings for the tool loop and for summarization
type LLMConfig struct {
	Endpoint          string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.openai.com/v1,description=OpenAI-compatible API endpoint"`
	APIKey            string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key, enables the tool-calling dialogue when set"`
	Model             string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o,description=Model driving the tool-calling dialogue"`
	SummaryModel      string        `yaml:"summary_model" json:"summary_model" jsonschema:"default=gpt-4o-mini,description=Model used for news summaries"`
	Temperature       float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0,description=Temperature for the dialogue model (0 keeps provider default)"`
	Timeout           time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Dialogue request timeout"`
	SummaryTimeout    time.Duration `yaml:"summary_timeout" json:"summary_timeout" jsonschema:"default=30s,description=Summary request timeout"`
	MaxToolIterations int           `yaml:"max_tool_iterations" json:"max_tool_iterations" jsonschema:"default=10,minimum=1,description=Maximum model round-trips per turn"`
	SystemPrompt      string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the dialogue (optional)"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults applied, used when no file is given
func Default() *Config {
	var cfg Config
	setDefaults(&cfg)
	return &cfg
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 90 * time.Second
	}

	// search
	if cfg.Search.Provider == "" {
		cfg.Search.Provider = ProviderExa
	}
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = "https://api.exa.ai"
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 20 * time.Second
	}
	if cfg.Search.ResultsPerTopic == 0 {
		cfg.Search.ResultsPerTopic = 5
	}
	if cfg.Search.RSSURL == "" {
		cfg.Search.RSSURL = "https://news.google.com/rss/search?q={query}"
	}

	// llm
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o"
	}
	if cfg.LLM.SummaryModel == "" {
		cfg.LLM.SummaryModel = "gpt-4o-mini"
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}
	if cfg.LLM.SummaryTimeout == 0 {
		cfg.LLM.SummaryTimeout = 30 * time.Second
	}
	if cfg.LLM.MaxToolIterations == 0 {
		cfg.LLM.MaxToolIterations = 10
	}

	// agent
	if cfg.Agent.TopicWorkers == 0 {
		cfg.Agent.TopicWorkers = 1
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	switch cfg.Search.Provider {
	case ProviderExa, ProviderRSS:
	default:
		return fmt.Errorf("search.provider must be %q or %q, got %q", ProviderExa, ProviderRSS, cfg.Search.Provider)
	}
	if cfg.Search.ResultsPerTopic < 1 || cfg.Search.ResultsPerTopic > 10 {
		return fmt.Errorf("search.results_per_topic must be between 1 and 10")
	}

	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.MaxToolIterations < 1 {
		return fmt.Errorf("llm.max_tool_iterations must be at least 1")
	}

	if cfg.Agent.TopicWorkers < 1 {
		return fmt.Errorf("agent.topic_workers must be at least 1")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetCORSOrigins returns allowed CORS origins, empty means any
func (c *Config) GetCORSOrigins() []string {
	return c.Server.CORSOrigins
}

// GetSearchConfig returns search provider configuration
func (c *Config) GetSearchConfig() SearchConfig {
	return c.Search
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
