package dna

import (
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/domuslabs/domus/internal/model"
)

// Index is the injectable signature repository used for similarity
// queries. Backing stores must be safe for concurrent use.
type Index interface {
	// Append stores a signature and returns its assigned id. An id
	// already stored is left in place, never duplicated.
	Append(dna model.RiskDNA) string

	// Similar returns the k nearest signatures by cosine similarity,
	// most similar first.
	Similar(signature []float64, k int) []Neighbor

	// Len reports the number of stored signatures.
	Len() int
}

// Neighbor is one similarity query result.
type Neighbor struct {
	ID         string  `json:"id"`
	Similarity float64 `json:"similarity"` // Cosine similarity, -1..1
	Composite  float64 `json:"composite"`
	Label      string  `json:"label"`
}

type indexEntry struct {
	id        string
	signature []float64
	composite float64
	label     string
}

// MemoryIndex is the in-memory append-only Index. Signatures are
// copied on insert and guarded by a single writer lock.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries []indexEntry
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Append stores a copy of the signature, assigning a fresh id when the
// caller provided none. Replaying an id already stored is a no-op, so
// cached results can re-enter the index safely.
func (ix *MemoryIndex) Append(dna model.RiskDNA) string {
	id := dna.ID
	if id == "" {
		id = uuid.NewString()
	}

	sig := make([]float64, len(dna.Signature))
	copy(sig, dna.Signature)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, e := range ix.entries {
		if e.id == id {
			return id
		}
	}
	ix.entries = append(ix.entries, indexEntry{
		id:        id,
		signature: sig,
		composite: dna.Composite,
		label:     dna.Label,
	})
	return id
}

// Similar scans all stored signatures; fine for the in-memory arena.
// A vector-index backing store can replace this without touching
// callers.
func (ix *MemoryIndex) Similar(signature []float64, k int) []Neighbor {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	neighbors := make([]Neighbor, 0, len(ix.entries))
	for _, e := range ix.entries {
		neighbors = append(neighbors, Neighbor{
			ID:         e.id,
			Similarity: Cosine(signature, e.signature),
			Composite:  e.composite,
			Label:      e.label,
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})

	if k > 0 && len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// Len reports the number of stored signatures.
func (ix *MemoryIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Cosine computes cosine similarity between two equal-length vectors.
// Zero vectors and mismatched lengths yield 0.
func Cosine(a, b []float64) float64 {
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
