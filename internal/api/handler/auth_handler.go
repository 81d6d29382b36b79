package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/dto"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/service"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/jwt"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/response"
)

// AuthHandler serves session endpoints.
type AuthHandler struct {
	authSvc service.AuthService
	jwtMgr  *jwt.Manager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService, jwtMgr *jwt.Manager) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, jwtMgr: jwtMgr}
}

// Login issues a session token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 100, "invalid request payload")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 111, "invalid email or password")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout revokes the current session.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("token_id")
	exp, _ := c.Get("token_exp")
	expiresAt, _ := exp.(time.Time)

	if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// Me returns the authenticated user.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 112, "user not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}

// Status probes the session without requiring one. Always 200, so the
// frontend can branch on authenticated instead of catching 401s.
// GET /api/v1/auth
func (h *AuthHandler) Status(c *gin.Context) {
	status := dto.AuthStatusResponse{}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		if claims, err := h.jwtMgr.ParseToken(parts[1]); err == nil {
			if user, err := h.authSvc.GetCurrentUser(c.Request.Context(), claims.UserID); err == nil {
				status.Authenticated = true
				status.User = user
			}
		}
	}

	response.OK(c, status)
}
