package app

import (
	"fmt"

	"github.com/yungbote/marketlens-backend/internal/clients/openai"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

type Clients struct {
	OpenAI openai.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}
	return Clients{OpenAI: ai}, nil
}
