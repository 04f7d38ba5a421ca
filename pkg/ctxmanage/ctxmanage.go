package ctxmanage

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const TraceIDKey = "traceId"

// SetTraceIdOfRequest attaches a new trace id to the gin context and returns it.
func SetTraceIdOfRequest(c *gin.Context) string {
	traceId := uuid.NewString()
	c.Set(TraceIDKey, traceId)
	return traceId
}

// GetTraceIdOfRequest returns the trace id stored by the logging middleware.
// Requests that bypass the middleware still get a usable id.
func GetTraceIdOfRequest(c *gin.Context) string {
	traceId, ok := c.Get(TraceIDKey)
	if !ok {
		return SetTraceIdOfRequest(c)
	}
	id, ok := traceId.(string)
	if !ok || id == "" {
		return SetTraceIdOfRequest(c)
	}
	return id
}
