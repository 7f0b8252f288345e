package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
)

// Formato de fechas en las respuestas de la API
const timeLayout = time.RFC3339

var (
	ErrUserNotFound   = errors.New("usuario no encontrado")
	ErrUsernameExists = errors.New("el nombre de usuario ya existe")
)

// UserService gestión de usuarios (acciones de admin)
type UserService struct {
	repo   *repository.Repository
	audit  *AuditService
	logger *zap.Logger
}

// NewUserService crea el servicio de usuarios
func NewUserService(repo *repository.Repository, audit *AuditService, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, logger: logger}
}

// Create da de alta un usuario
func (s *UserService) Create(ctx context.Context, actorID uint, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.OfficeID != nil {
		if _, err := s.repo.Office.GetByID(ctx, *req.OfficeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOfficeNotFound
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		OfficeID:     req.OfficeID,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		s.logger.Error("error al crear el usuario", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, &actorID, user.Username, "alta_usuario", "", "", fmt.Sprintf("rol=%s", role))

	created, err := s.repo.User.GetByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(created)
	return &resp, nil
}

// GetByID devuelve un usuario por id
func (s *UserService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// List lista usuarios según filtros
func (s *UserService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx, &repository.UserListFilters{
		OfficeID:        req.OfficeID,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("error al listar usuarios", zap.Error(err))
		return nil, err
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toUserResponse(&users[i]))
	}
	return resp, nil
}

// Update modifica el perfil de un usuario
func (s *UserService) Update(ctx context.Context, actorID, id uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	oldValue := fmt.Sprintf("username=%s rol=%s activo=%t", user.Username, user.Role, user.IsActive)

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.repo.User.GetByUsername(ctx, *req.Username); err == nil {
			return nil, ErrUsernameExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.OfficeID != nil {
		if _, err := s.repo.Office.GetByID(ctx, *req.OfficeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOfficeNotFound
			}
			return nil, err
		}
		user.OfficeID = req.OfficeID
		user.Office = nil
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("error al actualizar el usuario", zap.Uint("user_id", id), zap.Error(err))
		return nil, err
	}

	newValue := fmt.Sprintf("username=%s rol=%s activo=%t", user.Username, user.Role, user.IsActive)
	s.audit.Record(ctx, &actorID, user.Username, "edición_usuario", oldValue, newValue, "")

	updated, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(updated)
	return &resp, nil
}

// Deactivate baja lógica de un usuario. Nunca se borra la fila para
// preservar el histórico de pedidos.
func (s *UserService) Deactivate(ctx context.Context, actorID, id uint) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !user.IsActive {
		return nil // ya estaba desactivado
	}

	user.IsActive = false
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("error al desactivar el usuario", zap.Uint("user_id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, &actorID, user.Username, "baja_usuario", "activo=true", "activo=false", "")
	return nil
}

// ResetPassword resetea la contraseña de un usuario (acción de admin)
func (s *UserService) ResetPassword(ctx context.Context, actorID, id uint, req *dto.ResetPasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("error al resetear la contraseña", zap.Uint("user_id", id), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, &actorID, user.Username, "reseteo_contraseña", "", "", "")
	return nil
}
