package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/dto"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

// writeError maps err to the flat {error, message} body spec.md §6/§7
// specifies for the payment and config JSON surface, as distinct from
// the proxy pipeline's plain-text error bodies.
func writeError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, dto.ErrorBody{Error: appErr.Code, Message: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorBody{Error: "SERVER_000", Message: "Internal server error"})
}
