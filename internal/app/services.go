package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/marketlens-backend/internal/data/repos"
	"github.com/yungbote/marketlens-backend/internal/domain/market"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
	"github.com/yungbote/marketlens-backend/internal/services"
)

type Repos struct {
	Persona repos.PersonaRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Persona: repos.NewPersonaRepo(db, log),
	}
}

type Services struct {
	Personas        services.PersonaService
	ProductPersonas services.ProductPersonaService
	Similarity      services.SimilarityService
	Decisions       services.DecisionService
	Classifier      services.ClassifierService
	Insights        services.InsightService

	Pipeline *market.Pipeline
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")

	personas := services.NewPersonaService(log, clients.OpenAI, cfg.PersonaCount)
	productPersonas := services.NewProductPersonaService(log, clients.OpenAI)
	similarity := services.NewSimilarityService(log, clients.OpenAI, reposet.Persona)
	decisions := services.NewDecisionService(log, clients.OpenAI, cfg.DecisionSampleSize)
	classifier := services.NewClassifierService(log, clients.OpenAI)
	insights := services.NewInsightService(log, clients.OpenAI)

	pipeline := market.NewPipeline(
		log,
		personas,
		productPersonas,
		similarity,
		decisions,
		classifier,
		insights,
		market.Options{
			TopK:               cfg.SimilarTopK,
			InsightConcurrency: cfg.InsightConcurrency,
			StageTimeout:       cfg.StageTimeout,
		},
	)

	return Services{
		Personas:        personas,
		ProductPersonas: productPersonas,
		Similarity:      similarity,
		Decisions:       decisions,
		Classifier:      classifier,
		Insights:        insights,
		Pipeline:        pipeline,
	}
}
