package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/marketlens-backend/internal/http"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	log.Info("Wiring router...")
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:            log,
		HealthHandler:  handlerset.Health,
		AnalyzeHandler: handlerset.Analyze,
	})
}
