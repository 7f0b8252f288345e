package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// OfficeHandler endpoints de oficinas
type OfficeHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Create POST /api/v1/offices
func (h *OfficeHandler) Create(c *gin.Context) {
	var req dto.CreateOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40030, "datos de oficina inválidos")
		return
	}

	resp, err := h.svc.Office.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		if errors.Is(err, service.ErrOfficeNameExists) {
			response.Conflict(c, 40920, "ya existe una oficina con ese nombre")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, resp)
}

// List GET /api/v1/offices
func (h *OfficeHandler) List(c *gin.Context) {
	resp, err := h.svc.Office.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Update PUT /api/v1/offices/:id
func (h *OfficeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40031, "id de oficina inválido")
		return
	}

	var req dto.UpdateOfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40030, "datos de oficina inválidos")
		return
	}

	resp, err := h.svc.Office.Update(c.Request.Context(), currentUserID(c), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOfficeNotFound):
			response.NotFound(c, 40420, "oficina no encontrada")
		case errors.Is(err, service.ErrOfficeNameExists):
			response.Conflict(c, 40920, "ya existe una oficina con ese nombre")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// Delete DELETE /api/v1/offices/:id
func (h *OfficeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40031, "id de oficina inválido")
		return
	}

	if err := h.svc.Office.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrOfficeNotFound):
			response.NotFound(c, 40420, "oficina no encontrada")
		case errors.Is(err, service.ErrOfficeHasUsers):
			response.Conflict(c, 40921, "la oficina tiene usuarios asignados")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "oficina eliminada", nil)
}
