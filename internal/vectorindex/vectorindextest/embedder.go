// Package vectorindextest provides a deterministic embedder for tests.
package vectorindextest

import (
	"context"
	"hash/fnv"
	"strings"
	"sync/atomic"
	"unicode"
)

// HashEmbedder maps texts to bag-of-words vectors by hashing lowercase
// tokens into Dim buckets. Texts sharing words get high cosine similarity.
type HashEmbedder struct {
	Dim   int
	calls atomic.Int64
}

// NewHashEmbedder returns a HashEmbedder with dim buckets.
func NewHashEmbedder(dim int) *HashEmbedder {
	return &HashEmbedder{Dim: dim}
}

// Calls returns how many times EmbedTexts was invoked.
func (e *HashEmbedder) Calls() int {
	return int(e.calls.Load())
}

// EmbedTexts implements vectorindex.Embedder.
func (e *HashEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	e.calls.Add(1)
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.Dim)
		for _, tok := range tokens(text) {
			h := fnv.New32a()
			_, _ = h.Write([]byte(tok))
			vec[int(h.Sum32()%uint32(e.Dim))]++
		}
		out[i] = vec
	}
	return out, nil
}

func tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
