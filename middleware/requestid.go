package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with an identifier, minting one when the
// caller did not send any, and echoes it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set("requestId", reqID)
		c.Writer.Header().Set(requestIDHeader, reqID)
		c.Next()
	}
}
