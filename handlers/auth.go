package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fljobs/backend/auth"
	"github.com/fljobs/backend/logger"
	"github.com/fljobs/backend/models"
	"github.com/fljobs/backend/storage"
)

// AuthHandler handles authentication and profile requests
type AuthHandler struct {
	store      storage.Store
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(store storage.Store, jwtService *auth.JWTService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		store:      store,
		jwtService: jwtService,
		logger:     logger.OrNop(log).Named("auth"),
	}
}

// Register handles user registration with email/password
// @Summary Register a new user
// @Description Register a new user with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration request"
// @Success 201 {object} models.AuthResponse "Registration successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			badRequest(c, err)
			return
		}
		h.logger.Error("Failed to hash password", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to process registration", nil)
		return
	}

	user := &models.User{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.TrimSpace(req.Email),
		Password:          hashedPassword,
		Phone:             req.Phone,
		Location:          req.Location,
		PreferredLocation: req.Location,
		Skills:            []string{},
		Languages:         []string{},
		Avatar:            storage.DefaultAvatar,
	}

	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			respondError(c, http.StatusConflict, "Email already registered", nil)
			return
		}
		h.logger.Error("Failed to create user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to process registration", nil)
		return
	}

	h.issueToken(c, http.StatusCreated, user)
	h.logger.Info("User registered", zap.String("user_id", user.ID))
}

// Login handles user login with email/password
// @Summary Login user
// @Description Login with email and password to get JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.AuthResponse "Login successful"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.logger.Error("Failed to load user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to process login", nil)
		return
	}
	if user == nil || !auth.CheckPassword(req.Password, user.Password) {
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, http.StatusUnauthorized, "Incorrect email or password", nil)
		return
	}

	h.issueToken(c, http.StatusOK, user)
	h.logger.Info("User logged in", zap.String("user_id", user.ID))
}

// Refresh exchanges a valid token for a fresh one
// @Summary Refresh token
// @Description Issue a new token for the authenticated user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	claims := auth.GetAuthClaims(c)
	tokenString, ok := auth.BearerToken(c)
	if claims == nil || !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	token, err := h.jwtService.RefreshToken(tokenString)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not validate credentials", err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      claims.UserID(),
	})
}

// GetProfile retrieves the current user's profile
// @Summary Get user profile
// @Description Get the authenticated user's profile information
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileResponse "User profile"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.ProfileResponse{User: user})
}

// UpdateProfile updates the current user's profile
// @Summary Update user profile
// @Description Update the authenticated user's profile. Omitted fields are left unchanged.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Update profile request"
// @Success 200 {object} models.ProfileResponse "Profile updated"
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	user.Apply(req)

	if err := h.store.UpdateUser(c.Request.Context(), user); err != nil {
		h.logger.Error("Failed to update profile", zap.String("user_id", user.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to update profile", nil)
		return
	}

	updated, err := h.store.GetUserByID(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, http.StatusNotFound, "User not found", nil)
		return
	}

	h.logger.Info("Profile updated", zap.String("user_id", user.ID))
	c.JSON(http.StatusOK, models.ProfileResponse{
		User:    updated,
		Message: "Profile updated successfully",
	})
}

// currentUser loads the user named by the request's auth claims, writing the
// error response itself when that is not possible.
func (h *AuthHandler) currentUser(c *gin.Context) (*models.User, bool) {
	claims := auth.GetAuthClaims(c)
	if claims == nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return nil, false
	}

	user, err := h.store.GetUserByID(c.Request.Context(), claims.UserID())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "User not found", nil)
		return nil, false
	case err != nil:
		h.logger.Error("Failed to load user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load user", nil)
		return nil, false
	}
	return user, true
}

func (h *AuthHandler) issueToken(c *gin.Context, status int, user *models.User) {
	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate token", nil)
		return
	}
	c.JSON(status, models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
	})
}
