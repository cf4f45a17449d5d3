package index

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

const storeFile = "index.json"

// Store is an in-memory vector store over indexed documents, persisted
// as a single JSON file under the index directory.
type Store struct {
	Docs    []Document  `json:"docs"`
	Vectors [][]float32 `json:"vectors"`
}

// Hit is one search result with its similarity score
type Hit struct {
	Doc   Document
	Score float64
}

// Add appends a document and its vector
func (s *Store) Add(doc Document, vec []float32) {
	s.Docs = append(s.Docs, doc)
	s.Vectors = append(s.Vectors, vec)
}

// Len returns the number of indexed documents
func (s *Store) Len() int {
	return len(s.Docs)
}

// Search returns the k nearest documents by cosine similarity
func (s *Store) Search(query []float32, k int) []Hit {
	if len(s.Docs) == 0 || len(query) == 0 {
		return nil
	}
	if k <= 0 {
		k = 6
	}

	hits := make([]Hit, 0, len(s.Docs))
	for i, vec := range s.Vectors {
		score := cosine(query, vec)
		hits = append(hits, Hit{Doc: s.Docs[i], Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Save persists the store under dir
func (s *Store) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, storeFile), data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Load reads a previously saved store from dir
func Load(dir string) (*Store, error) {
	data, err := os.ReadFile(filepath.Join(dir, storeFile))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal index: %w", err)
	}

	if len(s.Docs) != len(s.Vectors) {
		return nil, fmt.Errorf("corrupt index: %d docs, %d vectors", len(s.Docs), len(s.Vectors))
	}
	return &s, nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
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
