package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/drawwire/drawwire-server/internal/auth"
	"github.com/drawwire/drawwire-server/internal/store"
)

// AuthHandlers provides HTTP handlers for authentication endpoints.
type AuthHandlers struct {
	authService *auth.Service
	store       store.UserStore
	log         *zerolog.Logger
}

// NewAuthHandlers creates a new auth handlers instance.
func NewAuthHandlers(authService *auth.Service, st store.UserStore, logger *zerolog.Logger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		store:       st,
		log:         logger,
	}
}

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response body.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsGuest  bool   `json:"is_guest"`
}

// Register handles user registration.
// POST /api/auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid register request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "user already exists"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to register user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("username", req.Username).Msg("user registered")
	c.JSON(http.StatusCreated, AuthResponse{Token: token})
}

// Login handles user login.
// POST /api/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to login user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// GuestLogin creates a guest user and returns a token.
// POST /api/auth/guest
func (h *AuthHandlers) GuestLogin(c *gin.Context) {
	token, sessionID, err := h.authService.CreateGuestUser(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create guest user")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.SetCookie(
		"guest_session",
		sessionID,
		3600*24*7, // 7 days
		"/",
		"",
		false, // secure (set to true behind HTTPS)
		true,  // httpOnly
	)

	h.log.Info().Str("session_id", sessionID).Msg("guest user created")
	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// Me returns the identity behind a token, used by clients to label their
// whiteboard session.
// GET /api/auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token is not valid"})
		return
	}
	uid, ok := userID.(int64)
	if !ok {
		h.log.Error().Msg("invalid user_id type in context")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	user, err := h.store.GetUserByID(c.Request.Context(), uid)
	if err != nil {
		h.log.Debug().Err(err).Int64("user_id", uid).Msg("token user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token is not valid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": UserResponse{
			ID:       user.ID,
			Username: user.Username,
			IsGuest:  user.IsGuest,
		},
	})
}
