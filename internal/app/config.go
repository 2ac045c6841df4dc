package app

import (
	"time"

	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
	"github.com/yungbote/marketlens-backend/internal/utils"
)

type Config struct {
	Port     string
	SeedFile string

	PersonaCount       int
	SimilarTopK        int
	DecisionSampleSize int
	InsightConcurrency int
	StageTimeout       time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8000", log)
	seedFile := utils.GetEnv("PERSONA_SEED_FILE", "seed/personas.yaml", log)
	personaCount := utils.GetEnvAsInt("PERSONA_COUNT", 5, log)
	similarTopK := utils.GetEnvAsInt("SIMILAR_TOP_K", 10, log)
	decisionSampleSize := utils.GetEnvAsInt("DECISION_SAMPLE_SIZE", 20, log)
	insightConcurrency := utils.GetEnvAsInt("INSIGHT_CONCURRENCY", 4, log)
	stageTimeoutSeconds := utils.GetEnvAsInt("STAGE_TIMEOUT_SECONDS", 90, log)
	return Config{
		Port:               port,
		SeedFile:           seedFile,
		PersonaCount:       personaCount,
		SimilarTopK:        similarTopK,
		DecisionSampleSize: decisionSampleSize,
		InsightConcurrency: insightConcurrency,
		StageTimeout:       time.Duration(stageTimeoutSeconds) * time.Second,
	}
}
