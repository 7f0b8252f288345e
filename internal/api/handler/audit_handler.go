package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/service"
	"github.com/fichadoradamathias/Restaurante2/pkg/response"
)

// AuditHandler consulta del log de auditoría (solo admin)
type AuditHandler struct {
	svc    *service.Service
	logger *zap.Logger
}

// List GET /api/v1/audit-logs?limit=
func (h *AuditHandler) List(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 1000 {
			response.BadRequest(c, 40070, "limit inválido")
			return
		}
		limit = n
	}

	resp, err := h.svc.Audit.List(c.Request.Context(), limit)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, resp)
}
