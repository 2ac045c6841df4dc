package services

import (
	"context"
	"fmt"

	"github.com/yungbote/marketlens-backend/internal/clients/openai"
	"github.com/yungbote/marketlens-backend/internal/domain/market"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// ProductPersonaService produces the archetype labels and target demographics
// for a product. The result frames the rest of the analysis and is immutable
// once produced.
type ProductPersonaService interface {
	GenerateProductPersonas(ctx context.Context, productDescription string) (market.ProductPersonaSet, error)
}

type productPersonaService struct {
	log *logger.Logger
	ai  openai.Client
}

func NewProductPersonaService(log *logger.Logger, ai openai.Client) ProductPersonaService {
	return &productPersonaService{
		log: log.With("service", "ProductPersonaService"),
		ai:  ai,
	}
}

var productPersonaSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"personas": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"age_ranges": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "enum": market.AgeBuckets},
		},
		"gender": map[string]any{
			"type": "string",
			"enum": []string{"Male", "Female", "Both"},
		},
	},
	"required":             []string{"personas", "age_ranges", "gender"},
	"additionalProperties": false,
}

func (s *productPersonaService) GenerateProductPersonas(ctx context.Context, productDescription string) (market.ProductPersonaSet, error) {
	system := "You are an expert market researcher. You segment a product's likely buyers into short, memorable archetype names."
	user := fmt.Sprintf(
		"For this product, name 3 to 5 buyer archetypes (short CamelCase labels like EcoConscious or BudgetBuyer), the target age ranges (subset of 18-29, 30-49, 50-64, 65+), and the target gender (Male, Female, or Both).\n\nProduct: %s",
		productDescription,
	)

	obj, err := s.ai.GenerateJSON(ctx, system, user, "product_personas", productPersonaSchema)
	if err != nil {
		return market.ProductPersonaSet{}, err
	}

	set := market.ProductPersonaSet{
		Archetypes: asStringSlice(obj["personas"]),
		AgeRanges:  filterAgeRanges(asStringSlice(obj["age_ranges"])),
		Gender:     asString(obj["gender"]),
	}
	if len(set.Archetypes) == 0 {
		return market.ProductPersonaSet{}, fmt.Errorf("model returned no archetypes")
	}
	switch set.Gender {
	case "Male", "Female", "Both":
	default:
		s.log.Warn("Model returned unexpected gender label, defaulting", "gender", set.Gender)
		set.Gender = "Both"
	}
	return set, nil
}

func filterAgeRanges(labels []string) []string {
	valid := make(map[string]bool, len(market.AgeBuckets))
	for _, b := range market.AgeBuckets {
		valid[b] = true
	}
	out := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if valid[l] && !seen[l] {
			out = append(out, l)
			seen[l] = true
		}
	}
	return out
}
