package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/marketlens-backend/internal/clients/openai"
	"github.com/yungbote/marketlens-backend/internal/domain/market"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// ClassifierService assigns each yes-decision persona to one of the declared
// product archetypes.
type ClassifierService interface {
	ClassifyYes(ctx context.Context, yesRecords []market.DecisionRecord, archetypes []string) ([]market.Classification, error)
}

type classifierService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewClassifierService(log *logger.Logger, ai openai.Client) ClassifierService {
	return &classifierService{
		log: log.With("service", "ClassifierService"),
		ai:  ai,
	}
}

var classificationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"classifications": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"persona_id":         map[string]any{"type": "string"},
					"assigned_archetype": map[string]any{"type": "string"},
				},
				"required":             []string{"persona_id", "assigned_archetype"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"classifications"},
	"additionalProperties": false,
}

func (s *classifierService) ClassifyYes(ctx context.Context, yesRecords []market.DecisionRecord, archetypes []string) ([]market.Classification, error) {
	if len(yesRecords) == 0 {
		return []market.Classification{}, nil
	}

	var sb strings.Builder
	for _, rec := range yesRecords {
		fmt.Fprintf(&sb, "- %s: %s\n", rec.PersonaID, rec.PersonaSummary)
	}

	system := "You classify buyers into product archetypes. Assign exactly one archetype to every buyer, choosing only from the provided labels."
	user := fmt.Sprintf(
		"Archetypes: %s\n\nBuyers:\n%s\nReturn one classification per buyer.",
		strings.Join(archetypes, ", "), sb.String(),
	)

	obj, err := s.ai.GenerateJSON(ctx, system, user, "yes_classifications", classificationSchema)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(yesRecords))
	for _, rec := range yesRecords {
		known[rec.PersonaID] = true
	}

	raw := asObjectSlice(obj["classifications"])
	out := make([]market.Classification, 0, len(raw))
	skipped := 0
	for _, item := range raw {
		cl := market.Classification{
			PersonaID:         asString(item["persona_id"]),
			AssignedArchetype: asString(item["assigned_archetype"]),
		}
		// Boundary validation: every classification must point at a real
		// yes-record; anything else is model noise.
		if cl.PersonaID == "" || cl.AssignedArchetype == "" || !known[cl.PersonaID] {
			skipped++
			continue
		}
		out = append(out, cl)
	}
	if skipped > 0 {
		s.log.Warn("Skipped malformed classifications", "skipped", skipped, "kept", len(out))
	}
	return out, nil
}
