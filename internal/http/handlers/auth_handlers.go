package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/galvital/YogaMoves/domain"
)

// AuthHandlers handles both login paths and token lifecycle requests
type AuthHandlers struct {
	authSvc    domain.AuthService
	logger     *zap.Logger
	production bool
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, logger *zap.Logger, production bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:    authSvc,
		logger:     logger,
		production: production,
	}
}

// GoogleCallbackRequest carries the authorization code from the frontend
type GoogleCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// OTPRequestRequest represents an OTP issuance request
type OTPRequestRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// OTPVerifyRequest represents OTP verification request
type OTPVerifyRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest represents logout request
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// GoogleURL returns the provider consent URL for the admin login flow
func (h *AuthHandlers) GoogleURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authUrl": h.authSvc.GoogleAuthURL()})
}

// GoogleCallback exchanges the authorization code and logs the admin in
func (h *AuthHandlers) GoogleCallback(c *gin.Context) {
	var req GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	result, err := h.authSvc.LoginWithGoogle(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case err == domain.ErrEmailNotAllowed:
			h.logger.Warn("google login rejected", zap.String("reason", "email not allowed"))
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not authorized"})
		case errors.Is(err, domain.ErrOAuthExchange):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Google authentication failed"})
		default:
			h.internalError(c, "Login failed", err)
		}
		return
	}

	h.logger.Info("admin logged in", zap.String("userId", result.User.ID))
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         userJSON(result.User),
	})
}

// RequestOTP issues a login code to a provisioned participant phone
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req OTPRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	otp, err := h.authSvc.RequestOTP(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case domain.ErrParticipantNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		case domain.ErrOTPThrottle:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		default:
			h.internalError(c, "Failed to send verification code", err)
		}
		return
	}

	h.logger.Info("otp issued", zap.String("phone", otp.PhoneNumber))
	body := gin.H{"message": "Verification code sent"}
	if !h.production {
		body["debugOtp"] = otp.Code
	}
	c.JSON(http.StatusOK, body)
}

// VerifyOTP consumes a login code and returns the token pair
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}

	result, err := h.authSvc.VerifyOTP(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		switch err {
		case domain.ErrInvalidPhone:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		case domain.ErrOTPInvalid:
			// One message for wrong, expired, used and unknown so callers
			// cannot probe code state.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		case domain.ErrParticipantNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
		default:
			h.internalError(c, "Verification failed", err)
		}
		return
	}

	h.logger.Info("participant logged in", zap.String("userId", result.User.ID))
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         userJSON(result.User),
	})
}

// Refresh renews the access token. A missing token is unauthorized; a
// present-but-invalid or revoked one is forbidden.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{err.Error()}})
		return
	}
	if req.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token required"})
		return
	}

	accessToken, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case domain.ErrTokenInvalid, domain.ErrTokenExpired, domain.ErrTokenRevoked:
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired refresh token"})
		default:
			h.internalError(c, "Token refresh failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout revokes the refresh token. Idempotent: unknown or absent tokens
// still return success.
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.internalError(c, "Logout failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID.(string))
	if err != nil {
		if err == domain.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.internalError(c, "Failed to load profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}

func (h *AuthHandlers) internalError(c *gin.Context, message string, err error) {
	internalError(c, h.logger, h.production, message, err)
}
