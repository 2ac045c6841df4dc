package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/marketlens-backend/internal/data/models"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

type fakePersonaRepo struct {
	rows []*models.StoredPersona
}

func (f *fakePersonaRepo) CreateBatch(ctx context.Context, rows []*models.StoredPersona) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakePersonaRepo) All(ctx context.Context) ([]*models.StoredPersona, error) {
	return f.rows, nil
}

func (f *fakePersonaRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}

type fixedEmbedder struct {
	vec []float32
}

func (f *fixedEmbedder) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	out := make([][]float32, len(inputs))
	for i := range inputs {
		out[i] = f.vec
	}
	return out, nil
}

func storedPersona(t *testing.T, summary string, embedding []float32) *models.StoredPersona {
	t.Helper()
	raw, err := json.Marshal(embedding)
	if err != nil {
		t.Fatalf("encoding embedding: %v", err)
	}
	return &models.StoredPersona{
		ID:        uuid.New(),
		Summary:   summary,
		Embedding: datatypes.JSON(raw),
	}
}

func TestFindTopPersonas_RanksByCosine(t *testing.T) {
	t.Parallel()

	repo := &fakePersonaRepo{rows: []*models.StoredPersona{
		storedPersona(t, "orthogonal", []float32{0, 1}),
		storedPersona(t, "aligned", []float32{1, 0}),
		storedPersona(t, "diagonal", []float32{1, 1}),
	}}
	svc := NewSimilarityService(logger.NewNop(), &fixedEmbedder{vec: []float32{1, 0}}, repo)

	matches, err := svc.FindTopPersonas(context.Background(), []string{"seed"}, 2)
	if err != nil {
		t.Fatalf("FindTopPersonas: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected topK truncation: %v", matches)
	}
	if matches[0].Summary != "aligned" {
		t.Fatalf("best match must come first: %v", matches)
	}
	if matches[0].Score < matches[1].Score {
		t.Fatalf("matches must be sorted by score: %v", matches)
	}
}

func TestFindTopPersonas_SkipsDimensionMismatch(t *testing.T) {
	t.Parallel()

	repo := &fakePersonaRepo{rows: []*models.StoredPersona{
		storedPersona(t, "bad dims", []float32{1, 0, 0}),
		storedPersona(t, "good", []float32{1, 0}),
	}}
	svc := NewSimilarityService(logger.NewNop(), &fixedEmbedder{vec: []float32{1, 0}}, repo)

	matches, err := svc.FindTopPersonas(context.Background(), []string{"seed"}, 10)
	if err != nil {
		t.Fatalf("FindTopPersonas: %v", err)
	}
	if len(matches) != 1 || matches[0].Summary != "good" {
		t.Fatalf("rows with unusable embeddings must be skipped: %v", matches)
	}
}

func TestFindTopPersonas_EmptyCorpusIsAnError(t *testing.T) {
	t.Parallel()

	svc := NewSimilarityService(logger.NewNop(), &fixedEmbedder{vec: []float32{1, 0}}, &fakePersonaRepo{})
	if _, err := svc.FindTopPersonas(context.Background(), []string{"seed"}, 10); err == nil {
		t.Fatalf("expected an error for an empty corpus")
	}
}

func TestFindTopPersonas_RequiresSeeds(t *testing.T) {
	t.Parallel()

	svc := NewSimilarityService(logger.NewNop(), &fixedEmbedder{vec: []float32{1, 0}}, &fakePersonaRepo{})
	if _, err := svc.FindTopPersonas(context.Background(), nil, 10); err == nil {
		t.Fatalf("expected an error when no seeds are provided")
	}
}
