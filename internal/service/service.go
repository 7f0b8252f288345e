package service

import (
	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/config"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
	"github.com/fichadoradamathias/Restaurante2/pkg/clock"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
	"github.com/fichadoradamathias/Restaurante2/pkg/redis"
)

// Service punto de entrada agregado de todos los servicios de negocio
type Service struct {
	Auth   *AuthService
	User   *UserService
	Office *OfficeService
	Week   *WeekService
	Menu   *MenuService
	Order  *OrderService
	Export *ExportService
	Audit  *AuditService
}

// NewService arma el agregado de servicios con sus dependencias.
// El orden importa: Export y Audit se crean antes que Week porque la
// finalización de semanas genera la planilla y deja rastro de auditoría.
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	clk clock.Clock,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	audit := NewAuditService(repo, logger)
	export := NewExportService(repo, &cfg.Export, clk, logger)
	week := NewWeekService(repo, export, audit, clk, logger)

	return &Service{
		Auth:   NewAuthService(repo, jwtMgr, rdb, audit, logger),
		User:   NewUserService(repo, audit, logger),
		Office: NewOfficeService(repo, audit, logger),
		Week:   week,
		Menu:   NewMenuService(repo, logger),
		Order:  NewOrderService(repo, clk, logger),
		Export: export,
		Audit:  audit,
	}
}
