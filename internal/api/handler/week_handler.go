package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// WeekHandler endpoints del ciclo de vida de semanas
type WeekHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Create POST /api/v1/weeks
func (h *WeekHandler) Create(c *gin.Context) {
	var req dto.CreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40040, "datos de semana inválidos")
		return
	}

	resp, err := h.svc.Week.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeekTitleExists):
			response.Conflict(c, 40930, "ya existe una semana con ese título")
		case errors.Is(err, service.ErrInvalidDateRange):
			response.BadRequest(c, 40041, "el plazo límite debe ser posterior a la fecha de inicio")
		default:
			response.BadRequest(c, 40040, err.Error())
		}
		return
	}

	response.Created(c, resp)
}

// List GET /api/v1/weeks
func (h *WeekHandler) List(c *gin.Context) {
	resp, err := h.svc.Week.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Current GET /api/v1/weeks/current
// Devuelve la semana abierta vigente con el menú y el pedido propio.
func (h *WeekHandler) Current(c *gin.Context) {
	userID := currentUserID(c)
	resp, err := h.svc.Week.Current(c.Request.Context(), &userID)
	if err != nil {
		if errors.Is(err, service.ErrNoCurrentWeek) {
			response.NotFound(c, 40430, "no hay una semana abierta en este momento")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Get GET /api/v1/weeks/:id
func (h *WeekHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	resp, err := h.svc.Week.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			response.NotFound(c, 40431, "semana no encontrada")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// Close POST /api/v1/weeks/:id/close
func (h *WeekHandler) Close(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	resp, err := h.svc.Week.Close(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeekNotFound):
			response.NotFound(c, 40431, "semana no encontrada")
		case errors.Is(err, service.ErrWeekAlreadyFinalized):
			response.Conflict(c, 40931, "la semana ya fue finalizada")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "semana cerrada", resp)
}

// Finalize POST /api/v1/weeks/:id/finalize
func (h *WeekHandler) Finalize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	actorID := currentUserID(c)
	resp, err := h.svc.Week.Finalize(c.Request.Context(), &actorID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeekNotFound):
			response.NotFound(c, 40431, "semana no encontrada")
		case errors.Is(err, service.ErrWeekAlreadyFinalized):
			response.Conflict(c, 40931, "la semana ya fue finalizada")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, resp.Message, resp)
}

// Delete DELETE /api/v1/weeks/:id
func (h *WeekHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	if err := h.svc.Week.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			response.NotFound(c, 40431, "semana no encontrada")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "semana eliminada con su menú y sus pedidos", nil)
}
