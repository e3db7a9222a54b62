package handler

import (
	"io"
	"net/http"

	domainerr "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/domain/usecase/webhook"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// WebhookHandler handles inbound gateway notifications
type WebhookHandler struct {
	ingestor *webhook.Ingestor
	logger   coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(ingestor *webhook.Ingestor, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{
		ingestor: ingestor,
		logger:   logger,
	}
}

// Receive handles the POST /webhook/:provider endpoint. The provider gets a
// 200 once the notification is durably recorded, even when processing failed;
// the replay sweep retries those. Only a failed durable write returns 500 so
// the provider redelivers.
func (h *WebhookHandler) Receive(c *gin.Context) {
	provider := c.Param("provider")

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("Failed to read webhook body", map[string]any{
			"provider": provider,
			"error":    err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			domainerr.CodeValidation,
			"Unreadable request body",
		))
		return
	}

	event, err := h.ingestor.Receive(c.Request.Context(), provider, raw)
	if event == nil && err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			domainerr.ErrorCode(err),
			"Failed to record notification",
		))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
