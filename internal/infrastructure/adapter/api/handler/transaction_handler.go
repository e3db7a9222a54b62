package handler

import (
	"net/http"

	domainerr "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/domain/port/persistence"
	"github.com/perna2k6/pernateste/internal/domain/usecase/lifecycle"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	engine       *lifecycle.Engine
	transactions persistence.TransactionRepository
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	engine *lifecycle.Engine,
	transactions persistence.TransactionRepository,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		engine:       engine,
		transactions: transactions,
		logger:       logger,
	}
}

// Create handles the POST /transactions/create endpoint. It validates the
// checkout form, creates the charge at the gateway and persists the pending
// transaction.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid checkout request format", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			domainerr.CodeValidation,
			"Invalid request format: "+err.Error(),
		))
		return
	}

	txn, err := h.engine.Begin(c.Request.Context(), req.ToCheckoutForm(), req.ExternalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromTransaction(txn)))
}

// Get handles the GET /transactions/:gatewayId endpoint, returning the stored
// transaction without touching the gateway.
func (h *TransactionHandler) Get(c *gin.Context) {
	gatewayID := c.Param("gatewayId")

	txn, err := h.transactions.GetByGatewayID(c.Request.Context(), gatewayID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromTransaction(txn)))
}

// GetStatus handles the GET /transactions/:gatewayId/status endpoint. It
// consults the gateway live and runs the result through the same transition
// logic webhooks use, so a missed notification is reconciled on read.
func (h *TransactionHandler) GetStatus(c *gin.Context) {
	gatewayID := c.Param("gatewayId")

	txn, err := h.engine.CheckStatus(c.Request.Context(), gatewayID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromTransaction(txn)))
}

// Refund handles the POST /transactions/:gatewayId/refund endpoint
func (h *TransactionHandler) Refund(c *gin.Context) {
	gatewayID := c.Param("gatewayId")

	txn, err := h.engine.Refund(c.Request.Context(), gatewayID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromTransaction(txn)))
}
