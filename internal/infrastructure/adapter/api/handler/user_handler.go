package handler

import (
	"net/http"
	"strconv"

	"github.com/perna2k6/pernateste/internal/domain/entity"
	domainerr "github.com/perna2k6/pernateste/internal/domain/error"
	coreport "github.com/perna2k6/pernateste/internal/domain/port/core"
	"github.com/perna2k6/pernateste/internal/domain/port/persistence"
	"github.com/perna2k6/pernateste/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users        persistence.UserRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(users persistence.UserRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserHandler {
	return &UserHandler{
		users:        users,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create handles the POST /users endpoint
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			domainerr.CodeValidation,
			"Invalid request format: "+err.Error(),
		))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("Failed to hash password", map[string]any{
			"error": err.Error(),
		})
		respondError(c, domainerr.ErrInternalServer)
		return
	}

	now := h.timeProvider.Now()
	user := &entity.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  string(hash),
		Name:      req.Name,
		Document:  req.Document,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromUser(user)))
}

// Get handles the GET /users/:id endpoint
func (h *UserHandler) Get(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			domainerr.CodeValidation,
			"Invalid user ID format",
		))
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromUser(user)))
}
