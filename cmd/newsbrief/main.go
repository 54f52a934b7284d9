package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsbrief/pkg/agent"
	"github.com/umputun/newsbrief/pkg/config"
	"github.com/umputun/newsbrief/pkg/llm"
	"github.com/umputun/newsbrief/pkg/search"
	"github.com/umputun/newsbrief/server"
)

// Opts with all CLI options
type Opts struct {
	Config    string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen    string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	ExaKey    string `long:"exa-key" env:"EXA_API_KEY" description:"Exa search API key"`
	OpenAIKey string `long:"openai-key" env:"OPENAI_API_KEY" description:"OpenAI API key, enables the tool-calling dialogue"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor, opts.ExaKey, opts.OpenAIKey)
	log.Printf("[INFO] starting newsbrief version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads configuration, wires adapters into the orchestrator and serves until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	llmCfg := cfg.GetLLMConfig()
	agentCfg := agent.Config{
		Searcher:        newSearcher(cfg.GetSearchConfig()),
		Summarizer:      llm.NewSummarizer(llmCfg),
		Model:           llmCfg.Model,
		Temperature:     llmCfg.Temperature,
		SystemPrompt:    llmCfg.SystemPrompt,
		MaxIterations:   llmCfg.MaxToolIterations,
		ResultsPerTopic: cfg.Search.ResultsPerTopic,
		TopicWorkers:    cfg.Agent.TopicWorkers,
	}
	if llmCfg.APIKey != "" {
		agentCfg.Chat = llm.NewChatClient(llmCfg)
	}
	orchestrator := agent.New(agentCfg)
	log.Printf("[INFO] dialogue mode %s, search provider %s", orchestrator.Mode(), cfg.Search.Provider)

	srv := server.New(cfg, orchestrator, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if given and applies CLI overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.ExaKey != "" {
		cfg.Search.APIKey = opts.ExaKey
	}
	if opts.OpenAIKey != "" {
		cfg.LLM.APIKey = opts.OpenAIKey
	}
	return cfg, nil
}

func newSearcher(cfg config.SearchConfig) agent.Searcher {
	if cfg.Provider == config.ProviderRSS {
		return search.NewRSS(cfg.RSSURL, cfg.Timeout)
	}
	return search.NewExa(search.ExaParams{Endpoint: cfg.Endpoint, APIKey: cfg.APIKey, Timeout: cfg.Timeout})
}

func setupLog(dbg, noColor bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	secs := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			secs = append(secs, s)
		}
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
