package api

import (
	"net/http"

	"piggybank/internal/apperr"
	"piggybank/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor is the single place error kinds become HTTP status codes.
func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden, apperr.Duplicate:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error envelope. Internal causes are
// logged server-side and never leak to the client.
func respondError(c *gin.Context, aerr *apperr.Error) {
	status := statusFor(aerr.Kind)
	body := gin.H{
		"statusCode": status,
		"message":    aerr.Message,
	}
	switch {
	case aerr.Kind == apperr.NotFound && aerr.Details != "":
		body["details"] = aerr.Details
	case aerr.Kind == apperr.Internal:
		body["message"] = "internal server error"
		body["error"] = "unexpected failure, see server log"
		logger.L.Error(aerr.Message, zap.Error(aerr.Err), zap.String("path", c.Request.URL.Path))
	}
	c.JSON(status, body)
}

// respondBindError reports a structurally invalid request body, which is
// distinguished from business-rule failures by the extra error field.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"message":    "malformed request body",
		"error":      err.Error(),
	})
}

func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"statusCode": http.StatusOK,
		"message":    message,
	})
}
