package server

import (
	"github.com/google/uuid"

	"github.com/gin-gonic/gin"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware tags every request with an ID so log lines from one
// request can be correlated. An incoming X-Request-ID is honored.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
