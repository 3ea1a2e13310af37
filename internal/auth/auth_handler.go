package auth

import (
	"net/http"
	"time"

	"shop-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	jwtManager *JWTManager
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtManager *JWTManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"admin123"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string    `json:"token"`
	Type      string    `json:"type" example:"Bearer"`
	ExpiresIn int       `json:"expires_in" example:"600"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /auth/login
// @Summary      Login and get JWT token
// @Description  Authenticates a user and returns a JWT token valid for 10 minutes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest   true  "Login credentials"
// @Success      200      {object}  LoginResponse  "Token generated"
// @Failure      422      {object}  errors.StandardError  "Missing credentials"
// @Failure      401      {object}  errors.StandardError  "Invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid login request", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError("invalid request", "username or password"))
		return
	}

	if !h.validateCredentials(req.Username, req.Password) {
		h.logger.Warn("Invalid credentials", zap.String("username", req.Username))
		c.JSON(http.StatusUnauthorized, errors.NewStandardError("Unauthorized", "invalid credentials", "username or password incorrect"))
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errors.NewInternalError("failed to generate token", err))
		return
	}

	h.logger.Info("User logged in", zap.String("username", req.Username))
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: int(tokenLifetime.Seconds()),
		ExpiresAt: time.Now().Add(tokenLifetime),
	})
}

// validateCredentials validates user credentials.
// For a prototype deployment only; production should query a user database.
func (h *AuthHandler) validateCredentials(username, password string) bool {
	validUsers := map[string]string{
		"admin":    "admin123",
		"operator": "operator123",
	}
	expected, ok := validUsers[username]
	return ok && expected == password
}
