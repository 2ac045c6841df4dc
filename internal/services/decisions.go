package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/marketlens-backend/internal/clients/openai"
	"github.com/yungbote/marketlens-backend/internal/domain/market"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// DecisionService simulates purchase decisions for a panel of synthetic
// shoppers filtered to the target demographics.
type DecisionService interface {
	AnalyzeDecisions(ctx context.Context, productDescription string, ageRanges []string, gender string) ([]market.DecisionRecord, error)
}

type decisionService struct {
	log        *logger.Logger
	ai         openai.Client
	sampleSize int
}

func NewDecisionService(log *logger.Logger, ai openai.Client, sampleSize int) DecisionService {
	if sampleSize <= 0 {
		sampleSize = 20
	}
	return &decisionService{
		log:        log.With("service", "DecisionService"),
		ai:         ai,
		sampleSize: sampleSize,
	}
}

var decisionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"details": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"persona_id":      map[string]any{"type": "string"},
					"decision":        map[string]any{"type": "string", "enum": []string{"yes", "no"}},
					"age":             map[string]any{"type": "string"},
					"persona_summary": map[string]any{"type": "string"},
				},
				"required":             []string{"persona_id", "decision", "age", "persona_summary"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"details"},
	"additionalProperties": false,
}

func (s *decisionService) AnalyzeDecisions(ctx context.Context, productDescription string, ageRanges []string, gender string) ([]market.DecisionRecord, error) {
	ageClause := "any age"
	if len(ageRanges) > 0 {
		ageClause = strings.Join(ageRanges, ", ")
	}
	genderClause := gender
	if genderClause == "" {
		genderClause = "Both"
	}

	system := "You simulate realistic consumer panels. Each panelist independently decides whether they would buy the product, with a one-sentence persona summary and an age consistent with the target ranges."
	user := fmt.Sprintf(
		"Simulate %d shoppers evaluating this product. Target age ranges: %s. Target gender: %s. For each shopper return persona_id (short unique token), decision (yes or no), age (a number or one of the range labels), and persona_summary.\n\nProduct: %s",
		s.sampleSize, ageClause, genderClause, productDescription,
	)

	obj, err := s.ai.GenerateJSON(ctx, system, user, "purchase_decisions", decisionSchema)
	if err != nil {
		return nil, err
	}

	details := asObjectSlice(obj["details"])
	if details == nil {
		return nil, fmt.Errorf("model response missing 'details'")
	}

	records := make([]market.DecisionRecord, 0, len(details))
	for _, d := range details {
		rec := market.DecisionRecord{
			PersonaID:      strings.TrimSpace(asString(d["persona_id"])),
			Decision:       asString(d["decision"]),
			Age:            asAgeString(d["age"]),
			PersonaSummary: asString(d["persona_summary"]),
		}
		if rec.PersonaID == "" {
			rec.PersonaID = uuid.NewString()
		}
		records = append(records, rec)
	}
	return records, nil
}
