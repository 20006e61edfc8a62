// ABOUTME: Tests for knowledge chunk storage and similarity search
// ABOUTME: Uses tiny hand-built vectors so rankings are predictable
package sqlite

import (
	"math"
	"testing"

	"github.com/voicedesk/voicedesk/internal/models"
)

func TestKnowledgeStoreSaveAndSearch(t *testing.T) {
	store := NewKnowledgeStore(testDB(t))

	chunks := []struct {
		chunk  models.KnowledgeChunk
		vector []float64
	}{
		{models.KnowledgeChunk{ID: "kb-1", Content: "How to install a network probe", Metadata: map[string]string{"source": "manual"}}, []float64{1, 0, 0}},
		{models.KnowledgeChunk{ID: "kb-2", Content: "Resetting user credentials"}, []float64{0, 1, 0}},
		{models.KnowledgeChunk{ID: "kb-3", Content: "Probe troubleshooting steps"}, []float64{0.9, 0.1, 0}},
	}
	for _, c := range chunks {
		if err := store.SaveChunk(c.chunk, c.vector); err != nil {
			t.Fatalf("SaveChunk(%s) failed: %v", c.chunk.ID, err)
		}
	}

	got, err := store.SearchSimilar([]float64{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("SearchSimilar failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("SearchSimilar returned %d chunks, want 2", len(got))
	}
	if got[0].ID != "kb-1" || got[1].ID != "kb-3" {
		t.Errorf("ranking = [%s, %s], want [kb-1, kb-3]", got[0].ID, got[1].ID)
	}
	if got[0].Relevance < got[1].Relevance {
		t.Error("results not sorted by relevance")
	}
	if got[0].Metadata["source"] != "manual" {
		t.Errorf("metadata = %v, want source=manual", got[0].Metadata)
	}
}

func TestKnowledgeStoreUpsert(t *testing.T) {
	store := NewKnowledgeStore(testDB(t))

	chunk := models.KnowledgeChunk{ID: "kb-1", Content: "old content"}
	if err := store.SaveChunk(chunk, []float64{1, 0}); err != nil {
		t.Fatalf("SaveChunk failed: %v", err)
	}
	chunk.Content = "new content"
	if err := store.SaveChunk(chunk, []float64{0, 1}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1 after upsert", count)
	}

	got, err := store.SearchSimilar([]float64{0, 1}, 1)
	if err != nil {
		t.Fatalf("SearchSimilar failed: %v", err)
	}
	if len(got) != 1 || got[0].Content != "new content" {
		t.Errorf("upsert did not replace content: %+v", got)
	}
}

func TestKnowledgeStoreRequiresID(t *testing.T) {
	store := NewKnowledgeStore(testDB(t))
	if err := store.SaveChunk(models.KnowledgeChunk{Content: "no id"}, nil); err == nil {
		t.Error("SaveChunk without ID should fail")
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"mismatched length", []float64{1, 0}, []float64{1, 0, 0}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVectorBlobRoundTrip(t *testing.T) {
	vector := []float64{0.1, -2.5, 1536.0, 0}
	got := blobToVector(vectorToBlob(vector))

	if len(got) != len(vector) {
		t.Fatalf("round trip length = %d, want %d", len(got), len(vector))
	}
	for i := range vector {
		if got[i] != vector[i] {
			t.Errorf("vector[%d] = %v, want %v", i, got[i], vector[i])
		}
	}
}
