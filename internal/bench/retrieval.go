package bench

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reactbench-io/reactbench/internal/memory"
	"github.com/reactbench-io/reactbench/internal/provider"
)

const retrievalQuestion = "Tell me about the project Kowalski and its benefits."

// retrievalDocs seed the vector store when it is empty.
var retrievalDocs = []string{
	"Kowalski is a high-performance, Rust-based framework for building AI agents.",
	"Rust offers memory safety, concurrency without GIL, and high performance.",
}

const retrievalK = 2

// RetrievalScenario measures embedding-backed retrieval: seed documents
// go through the vector store, the top matches are stuffed into the
// prompt, and a single completion answers the question.
type RetrievalScenario struct {
	completer provider.Completer
	store     *memory.Store
}

// NewRetrieval opens the vector store and seeds it if empty. StorePath
// defaults to a database file under the data directory.
func NewRetrieval(ctx context.Context, c provider.Completer, embedder memory.Embedder, opts Options) (*RetrievalScenario, error) {
	path := opts.StorePath
	if path == "" {
		if opts.DataDir == "" {
			return nil, fmt.Errorf("retrieval: a store path or data dir is required")
		}
		path = filepath.Join(opts.DataDir, "memory.db")
	}

	store, err := memory.NewStore(path, embedder)
	if err != nil {
		return nil, fmt.Errorf("retrieval: %w", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("retrieval: %w", err)
	}
	if n == 0 {
		if err := store.Add(ctx, retrievalDocs...); err != nil {
			store.Close()
			return nil, fmt.Errorf("retrieval: seed: %w", err)
		}
	}
	return &RetrievalScenario{completer: c, store: store}, nil
}

func (s *RetrievalScenario) Name() string { return "retrieval" }

// Close releases the underlying store.
func (s *RetrievalScenario) Close() error { return s.store.Close() }

func (s *RetrievalScenario) Run(ctx context.Context) (string, error) {
	docs, err := s.store.Search(ctx, retrievalQuestion, retrievalK)
	if err != nil {
		return "", fmt.Errorf("retrieval: search: %w", err)
	}

	contents := make([]string, 0, len(docs))
	for _, d := range docs {
		contents = append(contents, d.Content)
	}

	prompt := fmt.Sprintf(
		"Answer the question using only the context below.\n\nContext:\n%s\n\nQuestion: %s",
		strings.Join(contents, "\n"), retrievalQuestion)

	out, err := s.completer.Complete(ctx, provider.CompletionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("retrieval: %w", err)
	}
	return strings.TrimSpace(out), nil
}
