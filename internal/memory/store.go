package memory

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

// Embedder turns text into vectors. Satisfied by langchaingo's
// embeddings.Embedder.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Document is a stored text with its retrieval score (cosine similarity,
// only set on search results).
type Document struct {
	ID      string
	Content string
	Score   float64
}

// Store is a SQLite-backed vector store: documents are embedded on insert
// and ranked by brute-force cosine similarity on search.
type Store struct {
	db       *sql.DB
	embedder Embedder
}

// NewStore opens (or creates) the SQLite database at path and runs
// migrations.
func NewStore(path string, embedder Embedder) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("memory store: open: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("memory store: wal: %w", err)
	}

	s := &Store{db: db, embedder: embedder}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL,
			embedding  BLOB NOT NULL,
			created_at TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("memory store: migrate: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add embeds the given texts and stores them.
func (s *Store) Add(ctx context.Context, contents ...string) error {
	if len(contents) == 0 {
		return nil
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, contents)
	if err != nil {
		return fmt.Errorf("memory store: embed: %w", err)
	}
	if len(vectors) != len(contents) {
		return fmt.Errorf("memory store: embedder returned %d vectors for %d documents", len(vectors), len(contents))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("memory store: begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, content := range contents {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, content, embedding, created_at) VALUES (?, ?, ?, ?)`,
			newDocID(), content, encodeVector(vectors[i]), now,
		)
		if err != nil {
			return fmt.Errorf("memory store: insert: %w", err)
		}
	}
	return tx.Commit()
}

// Search embeds the query and returns the k most similar documents,
// best first.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Document, error) {
	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("memory store: embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, content, embedding FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("memory store: query: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		var blob []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &blob); err != nil {
			return nil, fmt.Errorf("memory store: scan: %w", err)
		}
		doc.Score = cosineSimilarity(queryVec, decodeVector(blob))
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("memory store: rows: %w", err)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Score > docs[j].Score })
	if k > 0 && len(docs) > k {
		docs = docs[:k]
	}
	return docs, nil
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("memory store: count: %w", err)
	}
	return n, nil
}

// cosineSimilarity returns the cosine of the angle between a and b,
// or 0 when either vector is degenerate.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// encodeVector packs a float32 slice into a little-endian blob.
func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v
}

// newDocID creates a short random hex ID.
func newDocID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
