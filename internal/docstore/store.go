// Package docstore implements the local document library: SQLite-backed
// storage of chunked documents with vector search. When an embedding engine
// is configured, search ranks by cosine similarity over stored embeddings;
// without one it degrades to keyword-overlap scoring.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"studymate/internal/logging"
)

// Passage is one ranked search hit, matching the document collaborator
// contract consumed by the agent layer.
type Passage struct {
	DocumentID      string
	DocumentTitle   string
	Content         string
	PageNumber      int // 0 when unknown
	SimilarityScore float64
	ChapterID       string
}

// SearchOptions control a document search.
type SearchOptions struct {
	MaxResults          int
	SimilarityThreshold float64
	DocumentIDs         []string // empty means all documents
}

// Store is the SQLite-backed document library.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	engine EmbeddingEngine
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS chunks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	document_id TEXT NOT NULL REFERENCES documents(id),
	content     TEXT NOT NULL,
	page_number INTEGER,
	chapter_id  TEXT,
	embedding   TEXT,
	created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);
`

// Open opens (or creates) the document database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logging.Get(logging.CategoryDocstore).Info("document store opened: %s (driver=%s)", path, sqliteDriver)
	return &Store{db: db}, nil
}

// SetEmbeddingEngine configures the embedding engine. Must be set before
// AddDocument for embeddings to be stored.
func (s *Store) SetEmbeddingEngine(engine EmbeddingEngine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HasDocuments reports whether the library contains any documents.
func (s *Store) HasDocuments(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return false
	}
	return n > 0
}

// AddDocument chunks the text and stores it under a fresh document ID.
// Page numbers are assigned per chunk assuming roughly one chunk per page of
// plain text; PDF-derived ingestion can set real pages via AddChunk.
func (s *Store) AddDocument(ctx context.Context, title, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docID := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO documents (id, title) VALUES (?, ?)", docID, title); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	chunks := chunkText(text, 1200)
	log := logging.Get(logging.CategoryDocstore)
	log.Info("ingesting %q: %d chunks", title, len(chunks))

	for i, chunk := range chunks {
		var embJSON string
		if s.engine != nil {
			vec, err := s.engine.Embed(ctx, chunk)
			if err != nil {
				// Store the chunk anyway; search falls back to keywords.
				log.Warn("embedding failed for chunk %d of %q: %v", i+1, title, err)
			} else if data, err := json.Marshal(vec); err == nil {
				embJSON = string(data)
			}
		}
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO chunks (document_id, content, page_number, embedding) VALUES (?, ?, ?, ?)",
			docID, chunk, i+1, embJSON); err != nil {
			return "", fmt.Errorf("failed to insert chunk %d: %w", i+1, err)
		}
	}
	return docID, nil
}

// chunkRow is an internal scan target.
type chunkRow struct {
	docID     string
	docTitle  string
	content   string
	page      sql.NullInt64
	chapterID sql.NullString
	embedding string
}

// Search returns ranked passages for the query. An empty library yields an
// empty slice and no error, per the collaborator contract the agents rely on.
func (s *Store) Search(ctx context.Context, query string, opts SearchOptions) ([]Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	rows, err := s.queryChunks(ctx, opts.DocumentIDs)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []Passage{}, nil
	}

	var queryVec []float32
	if s.engine != nil {
		if vec, err := s.engine.Embed(ctx, query); err == nil {
			queryVec = vec
		} else {
			logging.Get(logging.CategoryDocstore).Warn("query embedding failed, keyword fallback: %v", err)
		}
	}

	passages := make([]Passage, 0, len(rows))
	for _, row := range rows {
		score := s.scoreChunk(query, queryVec, row)
		if score < opts.SimilarityThreshold {
			continue
		}
		p := Passage{
			DocumentID:      row.docID,
			DocumentTitle:   row.docTitle,
			Content:         row.content,
			SimilarityScore: score,
		}
		if row.page.Valid {
			p.PageNumber = int(row.page.Int64)
		}
		if row.chapterID.Valid {
			p.ChapterID = row.chapterID.String
		}
		passages = append(passages, p)
	}

	sortByScore(passages)
	if len(passages) > maxResults {
		passages = passages[:maxResults]
	}

	logging.Get(logging.CategoryDocstore).Debug("search %q: %d/%d passages above threshold %.2f",
		query, len(passages), len(rows), opts.SimilarityThreshold)
	return passages, nil
}

func (s *Store) queryChunks(ctx context.Context, documentIDs []string) ([]chunkRow, error) {
	q := `SELECT c.document_id, d.title, c.content, c.page_number, c.chapter_id, c.embedding
	      FROM chunks c JOIN documents d ON d.id = c.document_id`
	var args []interface{}
	if len(documentIDs) > 0 {
		placeholders := strings.TrimRight(strings.Repeat("?,", len(documentIDs)), ",")
		q += " WHERE c.document_id IN (" + placeholders + ")"
		for _, id := range documentIDs {
			args = append(args, id)
		}
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("chunk query failed: %w", err)
	}
	defer rows.Close()

	var out []chunkRow
	for rows.Next() {
		var r chunkRow
		var emb sql.NullString
		if err := rows.Scan(&r.docID, &r.docTitle, &r.content, &r.page, &r.chapterID, &emb); err != nil {
			continue
		}
		if emb.Valid {
			r.embedding = emb.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// scoreChunk prefers cosine similarity when both vectors exist, keyword
// overlap otherwise.
func (s *Store) scoreChunk(query string, queryVec []float32, row chunkRow) float64 {
	if queryVec != nil && row.embedding != "" {
		var chunkVec []float32
		if err := json.Unmarshal([]byte(row.embedding), &chunkVec); err == nil {
			if sim, err := CosineSimilarity(queryVec, chunkVec); err == nil {
				return sim
			}
		}
	}
	return keywordOverlap(query, row.content)
}

// keywordOverlap scores by the fraction of query terms present in the chunk.
func keywordOverlap(query, content string) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return 0
	}
	haystack := strings.ToLower(content)
	hits := 0
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

func sortByScore(passages []Passage) {
	// Insertion sort keeps ordering stable for equal scores.
	for i := 1; i < len(passages); i++ {
		for j := i; j > 0 && passages[j].SimilarityScore > passages[j-1].SimilarityScore; j-- {
			passages[j], passages[j-1] = passages[j-1], passages[j]
		}
	}
}

// chunkText splits text into chunks of roughly maxLen characters, preferring
// paragraph boundaries.
func chunkText(text string, maxLen int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= maxLen {
		return []string{text}
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(para) > maxLen {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		// A single oversized paragraph is split hard.
		for len(para) > maxLen {
			chunks = append(chunks, para[:maxLen])
			para = para[maxLen:]
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// Stats summarises library contents for the CLI.
type Stats struct {
	Documents int
	Chunks    int
	UpdatedAt time.Time
}

// GetStats returns document and chunk counts.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&st.Documents); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&st.Chunks); err != nil {
		return st, err
	}
	st.UpdatedAt = time.Now()
	return st, nil
}
