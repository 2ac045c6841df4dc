package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody matches the error shape clients expect: a single human-readable
// detail string.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func RespondError(c *gin.Context, status int, detail string) {
	if detail == "" {
		detail = "unknown error"
	}
	c.JSON(status, ErrorBody{Detail: detail})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
