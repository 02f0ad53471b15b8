package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"office-hours-server/internal/config"
	"office-hours-server/internal/models"
	"office-hours-server/internal/store"
	"office-hours-server/internal/utils"
)

const refreshCookie = "refresh_token"

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Accounts store.Accounts
	Cfg      *config.Config
	Logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts store.Accounts, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Accounts: accounts, Cfg: cfg, Logger: log}
}

// SignupRequest represents the request body for user registration.
type SignupRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	Token        string               `json:"token"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Signup returns a handler registering users of the given role.
//
// @Summary      Register a student or professor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignupRequest  true  "Account"
// @Success      201   {object}  utils.ResponseData{data=models.UserSanitized}
// @Failure      400   {object}  utils.ResponseData
// @Failure      409   {object}  utils.ResponseData
// @Router       /students/signup [post]
// @Router       /professors/signup [post]
func (h *AuthHandler) Signup(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}

		user := models.User{
			Name:  strings.TrimSpace(req.Name),
			Email: normalizeEmail(req.Email),
			Role:  role,
		}
		if err := user.SetPassword(req.Password); err != nil {
			respondError(c, h.Logger, err)
			return
		}

		if err := h.Accounts.CreateUser(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrUserExists) {
				utils.Conflict(c, "User with this email already exists")
				return
			}
			respondError(c, h.Logger, err)
			return
		}

		h.Logger.Info("user registered", zap.String("userId", user.ID), zap.String("role", string(role)))
		utils.Created(c, "User registered successfully", user.Sanitize())
	}
}

// Login returns a handler authenticating users of the given role.
//
// @Summary      Log in as a student or professor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  utils.ResponseData{data=LoginResponse}
// @Failure      401   {object}  utils.ResponseData
// @Router       /students/login [post]
// @Router       /professors/login [post]
func (h *AuthHandler) Login(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}

		user, err := h.Accounts.UserByEmail(c.Request.Context(), normalizeEmail(req.Email), role)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				utils.Unauthorized(c, "Invalid email or password")
				return
			}
			respondError(c, h.Logger, err)
			return
		}

		if !user.CheckPassword(req.Password) {
			utils.Unauthorized(c, "Invalid email or password")
			return
		}

		accessToken, refreshToken, err := h.issueTokens(c, user)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}

		utils.Success(c, "Login successful", LoginResponse{
			Token:        accessToken,
			RefreshToken: refreshToken,
			User:         user.Sanitize(),
		})
	}
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) (string, string, error) {
	accessToken, refreshToken, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		return "", "", err
	}

	stored := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(utils.RefreshTTL(h.Cfg)),
	}
	if err := h.Accounts.SaveRefreshToken(c.Request.Context(), &stored); err != nil {
		return "", "", err
	}

	h.setRefreshCookie(c, refreshToken, int(utils.RefreshTTL(h.Cfg).Seconds()))
	return accessToken, refreshToken, nil
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(refreshCookie, value, maxAge, "/", "", !h.Cfg.IsDevelopment(), true)
}

// RefreshToken godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RefreshTokenRequest  false  "Token, unless sent as cookie"
// @Success      200   {object}  utils.ResponseData{data=LoginResponse}
// @Failure      401   {object}  utils.ResponseData
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	presented, err := c.Cookie(refreshCookie)
	if err != nil || presented == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		presented = req.RefreshToken
	}

	claims, err := utils.ValidateToken(presented, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token")
		return
	}

	ctx := c.Request.Context()
	stored, err := h.Accounts.UsableRefreshToken(ctx, presented, claims.UserID, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
			return
		}
		respondError(c, h.Logger, err)
		return
	}

	user, err := h.Accounts.UserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			utils.Unauthorized(c, "User no longer exists")
			return
		}
		respondError(c, h.Logger, err)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	next := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(utils.RefreshTTL(h.Cfg)),
	}
	if err := h.Accounts.RotateRefreshToken(ctx, stored, &next); err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
			return
		}
		respondError(c, h.Logger, err)
		return
	}
	h.setRefreshCookie(c, refreshToken, int(utils.RefreshTTL(h.Cfg).Seconds()))

	utils.Success(c, "Access token refreshed successfully", LoginResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         user.Sanitize(),
	})
}

// Logout godoc
// @Summary      Revoke a refresh token
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      LogoutRequest  true  "Token"
// @Success      200   {object}  utils.ResponseData
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	revoked, err := h.Accounts.RevokeRefreshToken(c.Request.Context(), req.RefreshToken, time.Now())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.setRefreshCookie(c, "", -1)

	if !revoked {
		utils.Success(c, "Logout successful (token not found or already invalid).", nil)
		return
	}
	utils.Success(c, "Logout successful. Refresh token has been invalidated.", nil)
}

// GetProfile godoc
// @Summary      Current user's profile
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  utils.ResponseData{data=models.UserSanitized}
// @Failure      401  {object}  utils.ResponseData
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	user, err := h.Accounts.UserByID(c.Request.Context(), p.ID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			utils.NotFound(c, "User profile not found")
			return
		}
		respondError(c, h.Logger, err)
		return
	}

	utils.Success(c, "Profile fetched successfully", user.Sanitize())
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
