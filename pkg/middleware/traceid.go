package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	traceHeader = "X-Request-ID"

	// TraceContextKey is where the per-request id lives in the gin
	// context; the response envelope reads it back from there.
	TraceContextKey = "trace_id"
)

// TraceIDMiddleware tags each request with an id for log and response
// correlation, reusing one supplied by an upstream proxy when present.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(traceHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(TraceContextKey, id)
		c.Writer.Header().Set(traceHeader, id)
		c.Next()
	}
}
