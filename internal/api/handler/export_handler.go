package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// ExportHandler endpoints de exportación de planillas
type ExportHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// Export POST /api/v1/weeks/:id/export  (admin, filtro ?office_id=)
// Genera la planilla detallada para la cocina y devuelve la ruta.
func (h *ExportHandler) Export(c *gin.Context) {
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

	createdBy := "admin"
	if me, err := h.svc.Auth.Me(c.Request.Context(), currentUserID(c)); err == nil {
		createdBy = me.Username
	}

	resp, err := h.svc.Export.Export(c.Request.Context(), weekID, officeID, createdBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeekNotFound):
			response.NotFound(c, 40431, "semana no encontrada")
		case errors.Is(err, service.ErrOfficeNotFound):
			response.NotFound(c, 40420, "oficina no encontrada")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OKMessage(c, resp.Message, resp)
}

// History GET /api/v1/weeks/:id/exports  (admin)
func (h *ExportHandler) History(c *gin.Context) {
	weekID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, 40042, "id de semana inválido")
		return
	}

	resp, err := h.svc.Export.History(c.Request.Context(), weekID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
