package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/perna2k6/pernateste/internal/domain/error"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error onto the HTTP status space and writes the
// error envelope. Unknown errors become opaque 500s; internal detail never
// reaches the client.
func respondError(c *gin.Context, err error) {
	var validationErr *domainerr.ValidationError
	if errors.As(err, &validationErr) {
		resp := dto.NewErrorResponse(domainerr.ErrorCode(err), "Validation failed")
		resp.Fields = validationErr.Fields
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case domainerr.IsNotFoundError(err):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, domainerr.ErrGatewayRejected):
		status = http.StatusBadRequest
		message = "Payment rejected by provider"
	case errors.Is(err, domainerr.ErrGatewayUnreachable):
		status = http.StatusBadGateway
		message = "Payment provider unavailable"
	case domainerr.IsDuplicateError(err):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, dto.NewErrorResponse(domainerr.ErrorCode(err), message))
}
