package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/domain/authz"
	"github.com/taskboard/taskboard/internal/service"
	"go.uber.org/zap"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	users  service.UserService
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users service.UserService, tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// Register creates an account. Unauthenticated callers get employee
// accounts; an authenticated admin may set the role.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	var caller *authz.Session
	if session, ok := auth.SessionFrom(c); ok {
		caller = &session
	}

	user, err := h.users.Register(c.Request.Context(), caller, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
