package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the top-level reactbench configuration.
type Config struct {
	Provider ProviderConfig `json:"provider"`
	Agent    AgentConfig    `json:"agent"`
	Bench    BenchConfig    `json:"bench"`
	Tools    ToolsConfig    `json:"tools"`
}

// ProviderConfig holds LLM provider settings.
type ProviderConfig struct {
	Type           string `json:"type,omitempty"` // "ollama" (default) or "openai"
	ServerURL      string `json:"server_url,omitempty"`
	APIKey         string `json:"api_key,omitempty"`
	Model          string `json:"model"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
}

// AgentConfig holds execution loop settings.
type AgentConfig struct {
	MaxIterations    int  `json:"max_iterations,omitempty"`     // default 15
	TimeLimitSeconds int  `json:"time_limit_seconds,omitempty"` // default 300
	MaxParseFailures int  `json:"max_parse_failures,omitempty"` // consecutive, default 3
	AbortOnToolError bool `json:"abort_on_tool_error,omitempty"`
	ObservationLimit int  `json:"observation_limit,omitempty"` // bytes per rendered observation
}

// BenchConfig holds benchmark runner settings.
type BenchConfig struct {
	DataDir   string `json:"data_dir"`
	StorePath string `json:"store_path,omitempty"` // sqlite file, default in-memory
}

// ToolsConfig holds tool-level settings.
type ToolsConfig struct {
	AllowedDir          string `json:"allowed_dir,omitempty"`
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds,omitempty"` // default 30
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv builds a config from environment variables with REACTBENCH_ prefix.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Bench: BenchConfig{
			DataDir:   getenv("REACTBENCH_DATA_DIR", "testdata"),
			StorePath: os.Getenv("REACTBENCH_STORE_PATH"),
		},
		Agent: AgentConfig{
			MaxIterations:    getenvInt("REACTBENCH_MAX_ITERATIONS", 0),
			TimeLimitSeconds: getenvInt("REACTBENCH_TIME_LIMIT", 0),
		},
	}

	if apiKey := os.Getenv("REACTBENCH_OPENAI_API_KEY"); apiKey != "" {
		cfg.Provider = ProviderConfig{
			Type:      "openai",
			APIKey:    apiKey,
			ServerURL: os.Getenv("REACTBENCH_OPENAI_BASE_URL"),
			Model:     getenv("REACTBENCH_MODEL", "gpt-4o"),
		}
	} else {
		cfg.Provider = ProviderConfig{
			Type:           "ollama",
			ServerURL:      getenv("REACTBENCH_OLLAMA_URL", "http://localhost:11434"),
			Model:          getenv("REACTBENCH_MODEL", "llama3.2"),
			EmbeddingModel: getenv("REACTBENCH_EMBEDDING_MODEL", "llama3.2"),
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for required fields.
func (c *Config) Validate() error {
	var errs []string

	switch c.Provider.Type {
	case "", "ollama":
		// server URL is optional, the client falls back to localhost
	case "openai":
		if c.Provider.APIKey == "" {
			errs = append(errs, "provider.api_key is required for openai")
		}
	default:
		errs = append(errs, fmt.Sprintf("provider.type %q is not supported (use ollama or openai)", c.Provider.Type))
	}
	if c.Provider.Model == "" {
		errs = append(errs, "provider.model is required")
	}

	if c.Bench.DataDir == "" {
		errs = append(errs, "bench.data_dir is required")
	}

	if c.Agent.MaxIterations < 0 {
		errs = append(errs, "agent.max_iterations must not be negative")
	}
	if c.Agent.TimeLimitSeconds < 0 {
		errs = append(errs, "agent.time_limit_seconds must not be negative")
	}
	if c.Agent.MaxParseFailures < 0 {
		errs = append(errs, "agent.max_parse_failures must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
