package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
)

var (
	ErrOfficeNotFound   = errors.New("oficina no encontrada")
	ErrOfficeNameExists = errors.New("ya existe una oficina con ese nombre")
	ErrOfficeHasUsers   = errors.New("la oficina tiene usuarios asignados")
)

// OfficeService gestión de oficinas
type OfficeService struct {
	repo   *repository.Repository
	audit  *AuditService
	logger *zap.Logger
}

// NewOfficeService crea el servicio de oficinas
func NewOfficeService(repo *repository.Repository, audit *AuditService, logger *zap.Logger) *OfficeService {
	return &OfficeService{repo: repo, audit: audit, logger: logger}
}

// Create da de alta una oficina
func (s *OfficeService) Create(ctx context.Context, actorID uint, req *dto.CreateOfficeRequest) (*dto.OfficeResponse, error) {
	if _, err := s.repo.Office.GetByName(ctx, req.Name); err == nil {
		return nil, ErrOfficeNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	office := &model.Office{Name: req.Name}
	if err := s.repo.Office.Create(ctx, office); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOfficeNameExists
		}
		s.logger.Error("error al crear la oficina", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, &actorID, "", "alta_oficina", "", office.Name, "")

	resp := s.toOfficeResponse(ctx, office)
	return &resp, nil
}

// List lista todas las oficinas con su cantidad de usuarios
func (s *OfficeService) List(ctx context.Context) ([]dto.OfficeResponse, error) {
	offices, err := s.repo.Office.List(ctx)
	if err != nil {
		s.logger.Error("error al listar oficinas", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.OfficeResponse, 0, len(offices))
	for i := range offices {
		resp = append(resp, s.toOfficeResponse(ctx, &offices[i]))
	}
	return resp, nil
}

// Update renombra una oficina
func (s *OfficeService) Update(ctx context.Context, actorID, id uint, req *dto.UpdateOfficeRequest) (*dto.OfficeResponse, error) {
	office, err := s.repo.Office.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficeNotFound
		}
		return nil, err
	}

	if req.Name != office.Name {
		if _, err := s.repo.Office.GetByName(ctx, req.Name); err == nil {
			return nil, ErrOfficeNameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	oldName := office.Name
	office.Name = req.Name
	if err := s.repo.Office.Update(ctx, office); err != nil {
		s.logger.Error("error al actualizar la oficina", zap.Uint("office_id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, &actorID, "", "renombre_oficina", oldName, office.Name, "")

	resp := s.toOfficeResponse(ctx, office)
	return &resp, nil
}

// Delete elimina una oficina sin usuarios asignados
func (s *OfficeService) Delete(ctx context.Context, actorID, id uint) error {
	office, err := s.repo.Office.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOfficeNotFound
		}
		return err
	}

	count, err := s.repo.Office.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrOfficeHasUsers
	}

	if err := s.repo.Office.Delete(ctx, id); err != nil {
		s.logger.Error("error al eliminar la oficina", zap.Uint("office_id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, &actorID, "", "baja_oficina", office.Name, "", "")
	return nil
}

func (s *OfficeService) toOfficeResponse(ctx context.Context, office *model.Office) dto.OfficeResponse {
	count, err := s.repo.Office.CountUsers(ctx, office.ID)
	if err != nil {
		s.logger.Warn("no se pudo contar los usuarios de la oficina",
			zap.Uint("office_id", office.ID), zap.Error(err))
	}
	return dto.OfficeResponse{
		ID:        office.ID,
		Name:      office.Name,
		UserCount: count,
		CreatedAt: office.CreatedAt.Format(timeLayout),
		UpdatedAt: office.UpdatedAt.Format(timeLayout),
	}
}
