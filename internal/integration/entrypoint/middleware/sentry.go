package middleware

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	domainerror "github.com/budget-dashboard/backend/internal/domain/error"
	"github.com/budget-dashboard/backend/internal/integration/entrypoint/dto"
)

// SentryHub attaches a per-request Sentry hub to the request context and reports
// panics before answering 500.
func SentryHub() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()
		hub.Scope().SetRequest(c.Request)
		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		defer func() {
			if recovered := recover(); recovered != nil {
				hub.RecoverWithContext(c.Request.Context(), recovered)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: "Internal server error",
					Code:  string(domainerror.ErrCodeInternalError),
				})
			}
		}()

		c.Next()
	}
}
