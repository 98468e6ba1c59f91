package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/embeddings"

	"github.com/reactbench-io/reactbench/internal/bench"
	"github.com/reactbench-io/reactbench/internal/config"
	"github.com/reactbench-io/reactbench/internal/logbuf"
	"github.com/reactbench-io/reactbench/internal/memory"
	"github.com/reactbench-io/reactbench/internal/provider"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		cmdRun(os.Args[2:])
	case "scenarios":
		if len(os.Args) < 3 || os.Args[2] != "list" {
			fmt.Fprintln(os.Stderr, "usage: reactbench scenarios list")
			os.Exit(1)
		}
		cmdScenariosList()
	case "config":
		if len(os.Args) < 4 || os.Args[2] != "validate" {
			fmt.Fprintln(os.Stderr, "usage: reactbench config validate <path>")
			os.Exit(1)
		}
		cmdConfigValidate(os.Args[3])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to config JSON file (env config when omitted)")
	scenario := fs.String("scenario", "", "Run a single scenario by name")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Parse(args)

	// .env before config resolution, so env config sees it.
	godotenv.Load()

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logBuf := logbuf.New(2000)
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logbuf.NewHandler(jsonHandler, logBuf))

	completer, err := buildCompleter(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts := bench.Options{
		Logger:           logger,
		DataDir:          cfg.Bench.DataDir,
		StorePath:        cfg.Bench.StorePath,
		MaxIterations:    cfg.Agent.MaxIterations,
		TimeLimit:        time.Duration(cfg.Agent.TimeLimitSeconds) * time.Second,
		MaxParseFailures: cfg.Agent.MaxParseFailures,
		AbortOnToolError: cfg.Agent.AbortOnToolError,
		ObservationLimit: cfg.Agent.ObservationLimit,
	}

	ctx := context.Background()
	runner := bench.NewRunner(logger)

	failed := false
	matched := false
	for _, info := range bench.Catalogue() {
		if *scenario != "" && info.Name != *scenario {
			continue
		}
		matched = true

		s, err := buildScenario(ctx, info.Name, completer, cfg, opts)
		if err != nil {
			bench.Report{Scenario: info.Name, Err: err}.Print(os.Stdout)
			failed = true
			continue
		}

		report := runner.Run(ctx, s)
		if c, ok := s.(io.Closer); ok {
			c.Close()
		}
		report.Print(os.Stdout)
		if report.Err != nil {
			failed = true
		}
	}

	if !matched {
		fmt.Fprintf(os.Stderr, "unknown scenario: %s\n", *scenario)
		os.Exit(1)
	}

	if failed {
		if *verbose {
			dumpLogTail(logBuf, 50)
		}
		os.Exit(1)
	}
}

// buildScenario constructs one scenario by catalogue name. Construction
// failures are setup errors.
func buildScenario(ctx context.Context, name string, c provider.Completer, cfg *config.Config, opts bench.Options) (bench.Scenario, error) {
	switch name {
	case "simple":
		return bench.NewSimple(c), nil
	case "tooluse":
		return bench.NewToolUse(c, opts)
	case "retrieval":
		embedder, err := buildEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		return bench.NewRetrieval(ctx, c, embedder, opts)
	case "csv":
		return bench.NewCSV(c, opts)
	default:
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
}

func buildCompleter(cfg *config.Config) (provider.Completer, error) {
	switch cfg.Provider.Type {
	case "openai":
		var opts []provider.OpenAIOption
		opts = append(opts, provider.WithModel(cfg.Provider.Model))
		if cfg.Provider.ServerURL != "" {
			opts = append(opts, provider.WithBaseURL(cfg.Provider.ServerURL))
		}
		return provider.NewOpenAI(cfg.Provider.APIKey, opts...), nil
	default:
		var opts []provider.OllamaOption
		opts = append(opts, provider.WithOllamaModel(cfg.Provider.Model))
		if cfg.Provider.ServerURL != "" {
			opts = append(opts, provider.WithServerURL(cfg.Provider.ServerURL))
		}
		return provider.NewOllama(opts...)
	}
}

// buildEmbedder creates an Ollama-backed embedder for the retrieval
// scenario. Embeddings always come from Ollama, even when completions go
// through an OpenAI-compatible gateway.
func buildEmbedder(cfg *config.Config) (memory.Embedder, error) {
	model := cfg.Provider.EmbeddingModel
	if model == "" {
		model = "llama3.2"
	}

	opts := []provider.OllamaOption{provider.WithOllamaModel(model)}
	if cfg.Provider.Type != "openai" && cfg.Provider.ServerURL != "" {
		opts = append(opts, provider.WithServerURL(cfg.Provider.ServerURL))
	}
	oc, err := provider.NewOllama(opts...)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(oc.Embeddings())
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	return embedder, nil
}

func dumpLogTail(buf *logbuf.Buffer, n int) {
	entries := buf.Tail(n)
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr, "--- recent log entries ---")
	for _, e := range entries {
		fmt.Fprintf(os.Stderr, "%s %-5s %s", e.Time.Format(time.RFC3339), e.Level, e.Message)
		for k, v := range e.Attrs {
			fmt.Fprintf(os.Stderr, " %s=%v", k, v)
		}
		fmt.Fprintln(os.Stderr)
	}
}

func cmdScenariosList() {
	for _, info := range bench.Catalogue() {
		fmt.Printf("%-12s %s\n", info.Name, info.Summary)
	}
}

func cmdConfigValidate(path string) {
	if _, err := config.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("config is valid")
}

func printUsage() {
	fmt.Println("reactbench - LLM usage-pattern benchmark harness")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  run                  Run benchmark scenarios (-config, -scenario, -v)")
	fmt.Println("  scenarios list       List available scenarios")
	fmt.Println("  config validate <p>  Validate config file")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  REACTBENCH_OLLAMA_URL       Ollama server URL (default: http://localhost:11434)")
	fmt.Println("  REACTBENCH_MODEL            Model name (default: llama3.2)")
	fmt.Println("  REACTBENCH_EMBEDDING_MODEL  Embedding model for retrieval")
	fmt.Println("  REACTBENCH_OPENAI_API_KEY   Use an OpenAI-compatible provider instead")
	fmt.Println("  REACTBENCH_OPENAI_BASE_URL  Override OpenAI-compatible base URL")
	fmt.Println("  REACTBENCH_DATA_DIR         Scenario data directory (default: testdata)")
}
