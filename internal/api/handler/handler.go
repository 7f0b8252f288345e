package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/service"
)

// Handler punto de entrada agregado de todos los handlers HTTP
type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Office *OfficeHandler
	Week   *WeekHandler
	Menu   *MenuHandler
	Order  *OrderHandler
	Export *ExportHandler
	Audit  *AuditHandler
}

// NewHandler arma el agregado de handlers
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:   &AuthHandler{svc: svc, logger: logger},
		User:   &UserHandler{svc: svc, logger: logger},
		Office: &OfficeHandler{svc: svc, logger: logger},
		Week:   &WeekHandler{svc: svc, logger: logger},
		Menu:   &MenuHandler{svc: svc, logger: logger},
		Order:  &OrderHandler{svc: svc, logger: logger},
		Export: &ExportHandler{svc: svc, logger: logger},
		Audit:  &AuditHandler{svc: svc, logger: logger},
	}
}

// parseIDParam lee un parámetro de ruta numérico ("/:id")
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseOfficeQuery lee el filtro opcional ?office_id=
func parseOfficeQuery(c *gin.Context) (*uint, bool) {
	raw := c.Query("office_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, false
	}
	u := uint(id)
	return &u, true
}
