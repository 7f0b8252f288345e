package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
)

// AuditService rastro de acciones administrativas y de seguridad.
// El registro es de mejor esfuerzo: una falla al auditar se loguea
// pero nunca aborta la operación de negocio.
type AuditService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAuditService crea el servicio de auditoría
func NewAuditService(repo *repository.Repository, logger *zap.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

// Record inserta una entrada en el log de auditoría.
func (s *AuditService) Record(ctx context.Context, actorID *uint, targetUsername, action, oldValue, newValue, details string) {
	entry := &model.AuditLog{
		ActorID:        actorID,
		TargetUsername: targetUsername,
		Action:         action,
		OldValue:       oldValue,
		NewValue:       newValue,
		Details:        details,
	}
	if err := s.repo.AuditLog.Create(ctx, entry); err != nil {
		s.logger.Warn("no se pudo registrar la entrada de auditoría",
			zap.String("action", action),
			zap.String("target", targetUsername),
			zap.Error(err))
	}
}

// List devuelve las entradas más recientes del log
func (s *AuditService) List(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	entries, err := s.repo.AuditLog.List(ctx, limit)
	if err != nil {
		s.logger.Error("error al listar el log de auditoría", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.AuditLogResponse{
			ID:             e.ID,
			ActorID:        e.ActorID,
			TargetUsername: e.TargetUsername,
			Action:         e.Action,
			OldValue:       e.OldValue,
			NewValue:       e.NewValue,
			Details:        e.Details,
			CreatedAt:      e.CreatedAt.Format(timeLayout),
		})
	}
	return resp, nil
}
