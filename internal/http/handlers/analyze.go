package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/marketlens-backend/internal/domain/market"
	"github.com/yungbote/marketlens-backend/internal/http/response"
	"github.com/yungbote/marketlens-backend/internal/pkg/logger"
)

// Analyzer runs the full persona analysis for one product description.
type Analyzer interface {
	Run(ctx context.Context, productDescription string) (*market.AnalysisResult, error)
}

type AnalyzeHandler struct {
	log      *logger.Logger
	pipeline Analyzer
}

func NewAnalyzeHandler(log *logger.Logger, pipeline Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{
		log:      log.With("handler", "AnalyzeHandler"),
		pipeline: pipeline,
	}
}

type analyzeRequest struct {
	ProductDescription string `json:"product_description"`
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "Missing 'product_description' in request body")
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), req.ProductDescription)
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (h *AnalyzeHandler) respondPipelineError(c *gin.Context, err error) {
	if errors.Is(err, market.ErrInvalidInput) {
		response.RespondError(c, http.StatusBadRequest, "Missing 'product_description' in request body")
		return
	}

	var stageErr *market.StageError
	if errors.As(err, &stageErr) {
		h.log.Error("Analysis stage failed", "stage", string(stageErr.Stage), "error", stageErr.Err)
		response.RespondError(c, http.StatusInternalServerError,
			fmt.Sprintf("Error %s: %v", stageErr.Stage, stageErr.Err))
		return
	}

	h.log.Error("Analysis failed", "error", err)
	response.RespondError(c, http.StatusInternalServerError,
		fmt.Sprintf("Internal server error: %v", err))
}
