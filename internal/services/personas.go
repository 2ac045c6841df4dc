package services

import (
	"context"
	"fmt"

	"github.com/yungbote/marketlens-backend/internal/clients/openai"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// PersonaService generates the abstract persona seeds used to query the
// stored corpus.
type PersonaService interface {
	GeneratePersonas(ctx context.Context, productDescription string) ([]string, error)
}

type personaService struct {
	log   *logger.Logger
	ai    openai.Client
	count int
}

func NewPersonaService(log *logger.Logger, ai openai.Client, count int) PersonaService {
	if count <= 0 {
		count = 5
	}
	return &personaService{
		log:   log.With("service", "PersonaService"),
		ai:    ai,
		count: count,
	}
}

var personaSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"personas": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required":             []string{"personas"},
	"additionalProperties": false,
}

func (s *personaService) GeneratePersonas(ctx context.Context, productDescription string) ([]string, error) {
	system := "You are an expert market researcher. You describe realistic potential buyers in one or two sentences each."
	user := fmt.Sprintf(
		"Based only on this product description, write %d distinct buyer persona descriptions. Each persona is one or two sentences covering lifestyle, values, and shopping habits.\n\nProduct: %s",
		s.count, productDescription,
	)

	obj, err := s.ai.GenerateJSON(ctx, system, user, "relevant_personas", personaSchema)
	if err != nil {
		return nil, err
	}

	personas := asStringSlice(obj["personas"])
	if len(personas) == 0 {
		return nil, fmt.Errorf("model returned no personas")
	}
	if len(personas) > s.count {
		personas = personas[:s.count]
	}
	return personas, nil
}
