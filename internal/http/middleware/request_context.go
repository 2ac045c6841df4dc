package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/marketlens-backend/internal/pkg/ctxutil"
)

// AttachRequestContext tags every request with an id so log lines from one
// analysis run can be correlated.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := &ctxutil.RequestData{RequestID: uuid.NewString()}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Writer.Header().Set("X-Request-ID", rd.RequestID)
		c.Next()
	}
}
