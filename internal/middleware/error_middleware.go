package middleware

import (
	"fmt"
	"net/http"

	"bilim-chat/internal/handler"
	"bilim-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler logs errors handlers attached to the context. If nothing was
// written yet, it answers with a 500.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.WithContext(c.Request.Context()).Error("request error",
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.Error(err),
			)
		}
		if !c.Writer.Written() {
			handler.WriteError(c, err)
		}
	}
}

// Recovery turns a panic into a 500 carrying the usual error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if c.Writer.Written() {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		handler.WriteError(c, fmt.Errorf("panic: %v", recovered))
	})
}
