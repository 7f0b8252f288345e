package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// UserHandler endpoints de gestión de usuarios (solo admin)
type UserHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Create POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40020, "datos de usuario inválidos")
		return
	}

	resp, err := h.svc.User.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, 40910, "el nombre de usuario ya existe")
		case errors.Is(err, service.ErrOfficeNotFound):
			response.BadRequest(c, 40021, "la oficina indicada no existe")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, resp)
}

// List GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 40022, "filtros de listado inválidos")
		return
	}

	resp, err := h.svc.User.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Get GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40023, "id de usuario inválido")
		return
	}

	resp, err := h.svc.User.GetByID(c.Request.Context(), id)
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

// Update PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40023, "id de usuario inválido")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40020, "datos de usuario inválidos")
		return
	}

	resp, err := h.svc.User.Update(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 40410, "usuario no encontrado")
		case errors.Is(err, service.ErrUsernameExists):
			response.Conflict(c, 40910, "el nombre de usuario ya existe")
		case errors.Is(err, service.ErrOfficeNotFound):
			response.BadRequest(c, 40021, "la oficina indicada no existe")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Deactivate DELETE /api/v1/users/:id
// Baja lógica; la fila queda para el histórico de pedidos.
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40023, "id de usuario inválido")
		return
	}

	if err := h.svc.User.Deactivate(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 40410, "usuario no encontrado")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "usuario desactivado", nil)
}

// ResetPassword POST /api/v1/users/:id/password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40023, "id de usuario inválido")
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40024, "contraseña nueva inválida")
		return
	}

	if err := h.svc.User.ResetPassword(c.Request.Context(), currentUserID(c), id, &req); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 40410, "usuario no encontrado")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "contraseña reseteada", nil)
}
