package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// MenuHandler endpoints del menú semanal
type MenuHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// AddItem POST /api/v1/weeks/:id/menu
func (h *MenuHandler) AddItem(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	var req dto.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40050, "datos de la opción de menú inválidos")
		return
	}

	resp, err := h.svc.Menu.AddItem(c.Request.Context(), weekID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeekNotFound):
			response.NotFound(c, 40431, "semana no encontrada")
		case errors.Is(err, service.ErrWeekAlreadyFinalized):
			response.Conflict(c, 40931, "la semana ya fue finalizada")
		case errors.Is(err, service.ErrMenuDayClosed):
			response.BadRequest(c, 40051, "el día está marcado sin servicio")
		case errors.Is(err, service.ErrMenuNumberTaken):
			response.Conflict(c, 40940, "ya existe una opción con ese número para ese día y franja")
		case errors.Is(err, service.ErrMenuDescriptionTaken):
			response.Conflict(c, 40941, "ya existe una opción con esa descripción para ese día y franja")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, resp)
}

// Catalog GET /api/v1/weeks/:id/menu
// Devuelve el catálogo estructurado día → franja → opciones.
func (h *MenuHandler) Catalog(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	if _, err := h.svc.Week.GetByID(c.Request.Context(), weekID); err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			response.NotFound(c, 40431, "semana no encontrada")
			return
		}
		response.InternalError(c)
		return
	}

	catalog, err := h.svc.Menu.Catalog(c.Request.Context(), weekID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, catalog)
}

// UpdateItem PUT /api/v1/menu-items/:id
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40052, "id de opción inválido")
		return
	}

	var req dto.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40050, "datos de la opción de menú inválidos")
		return
	}

	resp, err := h.svc.Menu.UpdateItem(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMenuItemNotFound):
			response.NotFound(c, 40440, "opción de menú no encontrada")
		case errors.Is(err, service.ErrMenuNumberTaken):
			response.Conflict(c, 40940, "ya existe una opción con ese número para ese día y franja")
		case errors.Is(err, service.ErrMenuDescriptionTaken):
			response.Conflict(c, 40941, "ya existe una opción con esa descripción para ese día y franja")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// DeleteItem DELETE /api/v1/menu-items/:id
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40052, "id de opción inválido")
		return
	}

	if err := h.svc.Menu.DeleteItem(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrMenuItemNotFound) {
			response.NotFound(c, 40440, "opción de menú no encontrada")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "opción eliminada", nil)
}
