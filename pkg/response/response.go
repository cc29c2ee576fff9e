// Package response centralizes how the proxy's reverse-proxy surface
// writes plain-text bodies back to callers. The payment/config JSON
// surface (spec.md §6) writes flat bodies directly via gin's c.JSON,
// since it has no generic envelope to share across endpoints.
package response

import (
	"errors"
	"net/http"

	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// PlainText sends a plain-text body, used by the proxy pipeline's own
// responses (§4.1/§7), which are not JSON envelopes.
func PlainText(c *gin.Context, status int, body string) {
	c.String(status, "%s", body)
}

// PlainError sends a plain-text error body, mapping *apperror.AppError
// to its HTTP status.
func PlainError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.String(appErr.HTTPStatus, "%s", appErr.Message)
		return
	}
	c.String(http.StatusInternalServerError, "Internal server error")
}
