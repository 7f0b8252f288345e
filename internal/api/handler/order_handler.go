package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// OrderHandler endpoints de pedidos
type OrderHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Submit PUT /api/v1/weeks/:id/order
// Guarda (o reemplaza entero) el pedido del usuario autenticado.
func (h *OrderHandler) Submit(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	var req dto.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 40060, "datos del pedido inválidos")
		return
	}

	resp, err := h.svc.Order.Submit(c.Request.Context(), currentUserID(c), weekID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeekNotFound):
			response.NotFound(c, 40431, "semana no encontrada")
		case errors.Is(err, service.ErrOrderWindowClosed):
			response.Conflict(c, 40950, "la semana no acepta pedidos")
		case errors.Is(err, service.ErrUnknownDetailKey),
			errors.Is(err, service.ErrInvalidSelection):
			response.BadRequest(c, 40061, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, "pedido guardado", resp)
}

// MyOrder GET /api/v1/weeks/:id/order
func (h *OrderHandler) MyOrder(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	resp, err := h.svc.Order.MyOrder(c.Request.Context(), currentUserID(c), weekID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, 40450, "todavía no hay pedido para esta semana")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}

// ListByWeek GET /api/v1/weeks/:id/orders  (admin, filtro ?office_id=)
func (h *OrderHandler) ListByWeek(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}
	officeID, ok := parseOfficeQuery(c)
	if !ok {
		response.BadRequest(c, 40062, "office_id inválido")
		return
	}

	resp, err := h.svc.Order.ListByWeek(c.Request.Context(), weekID, officeID)
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

// Compliance GET /api/v1/weeks/:id/compliance  (admin, filtro ?office_id=)
// Quiénes no pidieron y a qué pedidos les faltan días.
func (h *OrderHandler) Compliance(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}
	officeID, ok := parseOfficeQuery(c)
	if !ok {
		response.BadRequest(c, 40062, "office_id inválido")
		return
	}

	report, err := h.svc.Order.Compliance(c.Request.Context(), weekID, officeID)
	if err != nil {
		if errors.Is(err, service.ErrWeekNotFound) {
			response.NotFound(c, 40431, "semana no encontrada")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, report)
}
