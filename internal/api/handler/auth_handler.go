package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// AuthHandler endpoints de autenticación
type AuthHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40001, "datos de login inválidos")
		return
	}

	resp, err := h.svc.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, 40110, "usuario o contraseña incorrectos")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, 40310, "el usuario está desactivado")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Refresh POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40002, "falta el refresh token")
		return
	}

	resp, err := h.svc.Auth.Refresh(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			response.Unauthorized(c, 40103, "el refresh token expiró")
		case errors.Is(err, jwt.ErrTokenInvalid), errors.Is(err, service.ErrNotRefreshToken):
			response.Unauthorized(c, 40104, "refresh token inválido")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, 40310, "el usuario está desactivado")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Logout POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := currentClaims(c)
	if claims != nil {
		h.svc.Auth.Logout(c.Request.Context(), claims)
	}
	response.OKMessage(c, "sesión cerrada", nil)
}

// ChangePassword POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40003, "datos de cambio de contraseña inválidos")
		return
	}

	err := h.svc.Auth.ChangePassword(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongOldPassword):
			response.BadRequest(c, 40011, "la contraseña actual es incorrecta")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 40410, "usuario no encontrado")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "contraseña actualizada", nil)
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	resp, err := h.svc.Auth.Me(c.Request.Context(), currentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 40410, "usuario no encontrado")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
