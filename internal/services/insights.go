package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yungbote/marketlens-backend/internal/clients/openai"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// InsightService generates the marketing insight payload for one archetype's
// representative persona. The payload is treated as opaque by the pipeline
// and returned to the client verbatim.
type InsightService interface {
	GenerateInsights(ctx context.Context, productDescription, archetype, personaSummary string) (json.RawMessage, error)
}

type insightService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewInsightService(log *logger.Logger, ai openai.Client) InsightService {
	return &insightService{
		log: log.With("service", "InsightService"),
		ai:  ai,
	}
}

var insightSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"pain_points":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"motivations":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"buying_triggers":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"objections":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"recommended_messaging": map[string]any{"type": "string"},
	},
	"required":             []string{"pain_points", "motivations", "buying_triggers", "objections", "recommended_messaging"},
	"additionalProperties": false,
}

func (s *insightService) GenerateInsights(ctx context.Context, productDescription, archetype, personaSummary string) (json.RawMessage, error) {
	system := "You are a consumer insights analyst. You explain why a specific persona would buy a product and how to market to them."
	user := fmt.Sprintf(
		"Product: %s\n\nArchetype: %s\nPersona: %s\n\nProvide pain points, motivations, buying triggers, objections, and one recommended marketing message for this persona.",
		productDescription, archetype, personaSummary,
	)

	obj, err := s.ai.GenerateJSON(ctx, system, user, "persona_insights", insightSchema)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encoding insights: %w", err)
	}
	return raw, nil
}
