package app

import (
	httpH "github.com/yungbote/marketlens-backend/internal/http/handlers"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Analyze *httpH.AnalyzeHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(),
		Analyze: httpH.NewAnalyzeHandler(log, services.Pipeline),
	}
}
