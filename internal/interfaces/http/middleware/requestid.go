package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/parkline/parkline/internal/shared/constants"
	"github.com/parkline/parkline/internal/shared/id"
)

const RequestIDKey = constants.ContextKeyRequestID

// RequestID reuses the caller's X-Request-ID or generates one, and echoes
// it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" || len(requestID) > 64 {
			generated, err := id.Generate(16)
			if err == nil {
				requestID = generated
			}
		}
		if requestID != "" {
			c.Set(RequestIDKey, requestID)
			c.Header(constants.HeaderXRequestID, requestID)
		}
		c.Next()
	}
}
