package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/domain/port/persistence"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// SubscriptionHandler handles subscription-related HTTP requests
type SubscriptionHandler struct {
	subscriptions persistence.SubscriptionRepository
	logger        coreport.Logger
}

// NewSubscriptionHandler creates a new subscription handler instance
func NewSubscriptionHandler(subscriptions persistence.SubscriptionRepository, logger coreport.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// GetActive handles the GET /subscriptions?userId= endpoint, returning the
// user's current subscription, or a success envelope with null data when none
// is active. Having no subscription is a normal state, not a client error.
func (h *SubscriptionHandler) GetActive(c *gin.Context) {
	userIDParam := c.Query("userId")
	userID, err := strconv.ParseUint(userIDParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			domainerr.CodeValidation,
			"Invalid userId query parameter",
		))
		return
	}

	sub, err := h.subscriptions.GetActiveByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerr.ErrSubscriptionNotFound) {
			c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromSubscription(sub)))
}
