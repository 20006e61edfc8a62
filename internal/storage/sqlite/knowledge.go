// ABOUTME: Knowledge chunk storage with embedding vectors as BLOBs
// ABOUTME: Implements brute-force cosine similarity search over all chunks
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/voicedesk/voicedesk/internal/models"
)

// KnowledgeStore handles knowledge chunk persistence
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a new KnowledgeStore
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// SaveChunk stores a knowledge chunk with its embedding vector. The vector
// may be nil for chunks not yet embedded.
func (s *KnowledgeStore) SaveChunk(chunk models.KnowledgeChunk, vector []float64) error {
	if chunk.ID == "" {
		return fmt.Errorf("chunk ID is required")
	}

	var meta []byte
	if len(chunk.Metadata) > 0 {
		var err error
		meta, err = json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode chunk metadata: %w", err)
		}
	}

	var blob []byte
	if vector != nil {
		blob = vectorToBlob(vector)
	}

	_, err := s.db.Exec(`
		INSERT INTO knowledge_chunks (id, content, metadata, vector)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			metadata = excluded.metadata,
			vector = excluded.vector
	`, chunk.ID, chunk.Content, meta, blob)

	if err != nil {
		return fmt.Errorf("failed to save chunk %s: %w", chunk.ID, err)
	}
	return nil
}

// SearchSimilar performs cosine similarity search against all stored chunks
// and returns the top maxResults with Relevance set.
func (s *KnowledgeStore) SearchSimilar(queryVector []float64, maxResults int) ([]models.KnowledgeChunk, error) {
	rows, err := s.db.Query(`
		SELECT id, content, metadata, vector
		FROM knowledge_chunks
		WHERE vector IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("knowledge search failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.KnowledgeChunk
	for rows.Next() {
		var (
			chunk models.KnowledgeChunk
			meta  sql.NullString
			blob  []byte
		)
		if err := rows.Scan(&chunk.ID, &chunk.Content, &meta, &blob); err != nil {
			return nil, err
		}
		if meta.Valid && meta.String != "" {
			if err := json.Unmarshal([]byte(meta.String), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("corrupt metadata for chunk %s: %w", chunk.ID, err)
			}
		}
		chunk.Relevance = CosineSimilarity(queryVector, blobToVector(blob))
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Sort by relevance descending
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Relevance > chunks[j].Relevance
	})

	if len(chunks) > maxResults {
		chunks = chunks[:maxResults]
	}
	return chunks, nil
}

// Count returns the number of stored chunks
func (s *KnowledgeStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM knowledge_chunks").Scan(&n)
	return n, err
}

// CosineSimilarity computes cosine similarity between two vectors.
// Returns 0 for mismatched or zero-magnitude vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
