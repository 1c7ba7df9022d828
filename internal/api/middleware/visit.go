package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VisitRecorder stores one visit
type VisitRecorder interface {
	Record(ctx context.Context, ip, userAgent string) error
}

// VisitLogger records a visit before the request is handled. Static assets are
// skipped and recording failures never fail the request.
func VisitLogger(recorder VisitRecorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, "/static/") {
			if err := recorder.Record(c.Request.Context(), c.ClientIP(), c.Request.UserAgent()); err != nil {
				logger.Warn("Failed to record visit",
					zap.String("path", c.Request.URL.Path),
					zap.Error(err),
				)
			}
		}
		c.Next()
	}
}
