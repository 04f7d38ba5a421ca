package middleware

import (
	"log/slog"
	"time"

	"github.com/almondkiruthu/flashtans-app/pkg/ctxmanage"
	"github.com/almondkiruthu/flashtans-app/pkg/logkey"

	"github.com/gin-gonic/gin"
)

// Logger assigns a trace id to every request and logs the outcome once the
// handler chain has finished.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := ctxmanage.SetTraceIdOfRequest(c)
		start := time.Now()

		slog.Info("request started", slog.String(logkey.TraceID, traceId),
			slog.String("Method", c.Request.Method), slog.String("URL Path", c.Request.URL.Path))

		c.Next()

		slog.Info("request completed", slog.String(logkey.TraceID, traceId),
			slog.String("Method", c.Request.Method), slog.String("URL Path", c.Request.URL.Path),
			slog.Int("Status Code", c.Writer.Status()),
			slog.Int64("duration μs", time.Since(start).Microseconds()))
	}
}
