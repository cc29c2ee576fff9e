package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
	"github.com/unicitylabs/aggregator-proxy/pkg/response"
)

// MaxBodySize wraps the request body in a hard-capped reader. Reads past
// maxBytes return an error from the downstream reader; it is the body
// capture step's (§4.1 step 2) backstop, not the declared-Content-Length
// fast check that BodyGuard performs before any body is touched.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// BodyGuard implements spec.md §4.1 step 1: reject oversized or
// header-heavy requests before any further work — declared
// Content-Length over maxBytes, or more than maxHeaders header lines.
// Also installs MaxBodySize as the hard cap for the body capture that
// follows.
func BodyGuard(maxBytes int64, maxHeaders int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.PlainError(c, apperror.ErrBodyTooLarge())
			c.Abort()
			return
		}

		headerCount := 0
		for _, values := range c.Request.Header {
			headerCount += len(values)
		}
		if headerCount > maxHeaders {
			response.PlainError(c, apperror.ErrTooManyHeaders())
			c.Abort()
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
