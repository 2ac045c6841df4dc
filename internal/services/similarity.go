package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/yungbote/marketlens-backend/internal/data/repos"
	"github.com/yungbote/marketlens-backend/internal/domain/market"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// Embedder is the slice of the model client the similarity lookup needs.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

// SimilarityService ranks the stored persona corpus against the generated
// persona seeds by cosine similarity of their embeddings.
type SimilarityService interface {
	FindTopPersonas(ctx context.Context, seeds []string, topK int) ([]market.SimilarPersona, error)
}

type similarityService struct {
	log      *logger.Logger
	embedder Embedder
	repo     repos.PersonaRepo
}

func NewSimilarityService(log *logger.Logger, embedder Embedder, repo repos.PersonaRepo) SimilarityService {
	return &similarityService{
		log:      log.With("service", "SimilarityService"),
		embedder: embedder,
		repo:     repo,
	}
}

func (s *similarityService) FindTopPersonas(ctx context.Context, seeds []string, topK int) ([]market.SimilarPersona, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no persona seeds to match")
	}
	if topK <= 0 {
		topK = 10
	}

	vectors, err := s.embedder.Embed(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("embedding persona seeds: %w", err)
	}
	query := meanPool(vectors)
	if query == nil {
		return nil, fmt.Errorf("empty seed embeddings")
	}

	stored, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading persona corpus: %w", err)
	}
	if len(stored) == 0 {
		return nil, fmt.Errorf("persona corpus is empty")
	}

	matches := make([]market.SimilarPersona, 0, len(stored))
	skipped := 0
	for _, row := range stored {
		var embedding []float32
		if err := json.Unmarshal(row.Embedding, &embedding); err != nil || len(embedding) != len(query) {
			skipped++
			continue
		}
		matches = append(matches, market.SimilarPersona{
			ID:      row.ID.String(),
			Summary: row.Summary,
			Score:   cosine(query, embedding),
		})
	}
	if skipped > 0 {
		s.log.Warn("Skipped corpus rows with unusable embeddings", "skipped", skipped)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no corpus rows with usable embeddings")
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func meanPool(vectors [][]float32) []float32 {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil
	}
	dim := len(vectors[0])
	out := make([]float32, dim)
	n := 0
	for _, v := range vectors {
		if len(v) != dim {
			continue
		}
		for i, f := range v {
			out[i] += f
		}
		n++
	}
	if n == 0 {
		return nil
	}
	for i := range out {
		out[i] /= float32(n)
	}
	return out
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
