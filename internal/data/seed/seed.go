package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"

	"github.com/yungbote/marketlens-backend/internal/data/models"
	"github.com/yungbote/marketlens-backend/internal/data/repos"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// Embedder is the slice of the model client the seeder needs.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

type corpusFile struct {
	Personas []corpusPersona `yaml:"personas"`
}

type corpusPersona struct {
	Summary  string `yaml:"summary"`
	AgeRange string `yaml:"age_range"`
	Gender   string `yaml:"gender"`
}

// Run loads the persona corpus from a YAML file, embeds every summary, and
// stores the result. It is a no-op when the store is already populated, so
// restarts don't re-embed.
func Run(ctx context.Context, log *logger.Logger, repo repos.PersonaRepo, embedder Embedder, path string) error {
	log = log.With("component", "PersonaSeeder")

	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting stored personas: %w", err)
	}
	if n > 0 {
		log.Info("Persona corpus already seeded", "count", n)
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading corpus file %s: %w", path, err)
	}
	var corpus corpusFile
	if err := yaml.Unmarshal(raw, &corpus); err != nil {
		return fmt.Errorf("parsing corpus file %s: %w", path, err)
	}
	if len(corpus.Personas) == 0 {
		return fmt.Errorf("corpus file %s contains no personas", path)
	}

	summaries := make([]string, len(corpus.Personas))
	for i, p := range corpus.Personas {
		summaries[i] = p.Summary
	}

	vectors, err := embedder.Embed(ctx, summaries)
	if err != nil {
		return fmt.Errorf("embedding corpus summaries: %w", err)
	}
	if len(vectors) != len(corpus.Personas) {
		return fmt.Errorf("embedding count mismatch: got=%d want=%d", len(vectors), len(corpus.Personas))
	}

	rows := make([]*models.StoredPersona, 0, len(corpus.Personas))
	for i, p := range corpus.Personas {
		embedding, err := json.Marshal(vectors[i])
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}
		rows = append(rows, &models.StoredPersona{
			ID:        uuid.New(),
			Summary:   p.Summary,
			AgeRange:  p.AgeRange,
			Gender:    p.Gender,
			Embedding: datatypes.JSON(embedding),
		})
	}

	if err := repo.CreateBatch(ctx, rows); err != nil {
		return fmt.Errorf("storing seeded personas: %w", err)
	}
	log.Info("Seeded persona corpus", "count", len(rows), "file", path)
	return nil
}
