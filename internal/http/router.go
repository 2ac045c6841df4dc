package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/yungbote/marketlens-backend/internal/http/handlers"
	httpMW "github.com/yungbote/marketlens-backend/internal/http/middleware"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	HealthHandler  *httpH.HealthHandler
	AnalyzeHandler *httpH.AnalyzeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.HealthCheck)
	}
	if cfg.AnalyzeHandler != nil {
		r.POST("/analyze", cfg.AnalyzeHandler.Analyze)
	}

	return r
}
