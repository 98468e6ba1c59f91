package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validJSON = `{
  "provider": {
    "type": "ollama",
    "server_url": "http://localhost:11434",
    "model": "llama3.2",
    "embedding_model": "llama3.2"
  },
  "agent": {
    "max_iterations": 10,
    "time_limit_seconds": 120,
    "max_parse_failures": 2,
    "abort_on_tool_error": true
  },
  "bench": {
    "data_dir": "/tmp/reactbench-test",
    "store_path": "/tmp/reactbench-test/docs.db"
  },
  "tools": {
    "allowed_dir": "/tmp/reactbench-test",
    "fetch_timeout_seconds": 10
  }
}`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.WriteFile(path, []byte(validJSON), 0o644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider.Type != "ollama" {
		t.Errorf("provider.type = %q", cfg.Provider.Type)
	}
	if cfg.Provider.ServerURL != "http://localhost:11434" {
		t.Errorf("provider.server_url = %q", cfg.Provider.ServerURL)
	}
	if cfg.Provider.Model != "llama3.2" {
		t.Errorf("provider.model = %q", cfg.Provider.Model)
	}
	if cfg.Agent.MaxIterations != 10 {
		t.Errorf("agent.max_iterations = %d", cfg.Agent.MaxIterations)
	}
	if cfg.Agent.TimeLimitSeconds != 120 {
		t.Errorf("agent.time_limit_seconds = %d", cfg.Agent.TimeLimitSeconds)
	}
	if !cfg.Agent.AbortOnToolError {
		t.Error("agent.abort_on_tool_error = false")
	}
	if cfg.Bench.DataDir != "/tmp/reactbench-test" {
		t.Errorf("bench.data_dir = %q", cfg.Bench.DataDir)
	}
	if cfg.Tools.FetchTimeoutSeconds != 10 {
		t.Errorf("tools.fetch_timeout_seconds = %d", cfg.Tools.FetchTimeoutSeconds)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	os.WriteFile(path, []byte("not json"), 0o644)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestValidate_MissingModel(t *testing.T) {
	cfg := &Config{
		Bench: BenchConfig{DataDir: "/data"},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "provider.model") {
		t.Errorf("expected provider.model error, got %v", err)
	}
}

func TestValidate_OpenAINeedsKey(t *testing.T) {
	cfg := &Config{
		Provider: ProviderConfig{Type: "openai", Model: "gpt-4o"},
		Bench:    BenchConfig{DataDir: "/data"},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "api_key") {
		t.Errorf("expected api_key error, got %v", err)
	}
}

func TestValidate_UnknownProviderType(t *testing.T) {
	cfg := &Config{
		Provider: ProviderConfig{Type: "bedrock", Model: "m"},
		Bench:    BenchConfig{DataDir: "/data"},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("expected unsupported type error, got %v", err)
	}
}

func TestValidate_MissingDataDir(t *testing.T) {
	cfg := &Config{
		Provider: ProviderConfig{Model: "llama3.2"},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "bench.data_dir") {
		t.Errorf("expected data_dir error, got %v", err)
	}
}

func TestValidate_NegativeLimits(t *testing.T) {
	cfg := &Config{
		Provider: ProviderConfig{Model: "llama3.2"},
		Agent:    AgentConfig{MaxIterations: -1},
		Bench:    BenchConfig{DataDir: "/data"},
	}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "max_iterations") {
		t.Errorf("expected max_iterations error, got %v", err)
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := &Config{
		Provider: ProviderConfig{Model: "llama3.2"},
		Bench:    BenchConfig{DataDir: "/data"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
}

func TestLoadFromEnv_Ollama(t *testing.T) {
	t.Setenv("REACTBENCH_OLLAMA_URL", "http://ollama:11434")
	t.Setenv("REACTBENCH_MODEL", "mistral")
	t.Setenv("REACTBENCH_DATA_DIR", "/env/data")
	t.Setenv("REACTBENCH_MAX_ITERATIONS", "7")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Provider.Type != "ollama" {
		t.Errorf("provider.type = %q", cfg.Provider.Type)
	}
	if cfg.Provider.ServerURL != "http://ollama:11434" {
		t.Errorf("server_url = %q", cfg.Provider.ServerURL)
	}
	if cfg.Provider.Model != "mistral" {
		t.Errorf("model = %q", cfg.Provider.Model)
	}
	if cfg.Bench.DataDir != "/env/data" {
		t.Errorf("data_dir = %q", cfg.Bench.DataDir)
	}
	if cfg.Agent.MaxIterations != 7 {
		t.Errorf("max_iterations = %d", cfg.Agent.MaxIterations)
	}
}

func TestLoadFromEnv_OpenAI(t *testing.T) {
	t.Setenv("REACTBENCH_OPENAI_API_KEY", "sk-env")
	t.Setenv("REACTBENCH_OPENAI_BASE_URL", "https://gateway.example.com/v1")
	t.Setenv("REACTBENCH_MODEL", "gpt-4o-mini")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Provider.Type != "openai" {
		t.Errorf("provider.type = %q", cfg.Provider.Type)
	}
	if cfg.Provider.APIKey != "sk-env" {
		t.Errorf("api_key = %q", cfg.Provider.APIKey)
	}
	if cfg.Provider.ServerURL != "https://gateway.example.com/v1" {
		t.Errorf("server_url = %q", cfg.Provider.ServerURL)
	}
	if cfg.Provider.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", cfg.Provider.Model)
	}
}
