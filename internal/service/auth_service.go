package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
	"github.com/fichadoradamathias/Restaurante2/pkg/jwt"
	"github.com/fichadoradamathias/Restaurante2/pkg/redis"
)

var (
	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrUserInactive       = errors.New("el usuario está desactivado")
	ErrWrongOldPassword   = errors.New("la contraseña actual es incorrecta")
	ErrNotRefreshToken    = errors.New("el token no es de renovación")
)

// AuthService autenticación y sesiones
type AuthService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client // puede ser nil si Redis no está disponible
	audit  *AuditService
	logger *zap.Logger
}

// NewAuthService crea el servicio de autenticación
func NewAuthService(repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, audit *AuditService, logger *zap.Logger) *AuthService {
	return &AuthService{repo: repo, jwtMgr: jwtMgr, rdb: rdb, audit: audit, logger: logger}
}

// Login valida credenciales y emite el par de tokens
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("error al buscar el usuario para login", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.audit.Record(ctx, nil, req.Username, "login_fallido", "", "", "contraseña incorrecta")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Role, user.OfficeID)
	if err != nil {
		s.logger.Error("error al generar el access token", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.Role, user.OfficeID)
	if err != nil {
		s.logger.Error("error al generar el refresh token", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, &user.ID, user.Username, "login", "", "", "")

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

// Refresh emite un nuevo par de tokens a partir de un refresh token válido.
// El refresh token usado queda en la lista negra.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.LoginResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrNotRefreshToken
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("no se pudo consultar la lista negra de tokens", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, jwt.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Role, user.OfficeID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.Role, user.OfficeID)
	if err != nil {
		return nil, err
	}

	s.blacklist(ctx, claims)

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(user),
	}, nil
}

// Logout invalida el token con el que se hizo la llamada
func (s *AuthService) Logout(ctx context.Context, claims *jwt.Claims) {
	s.blacklist(ctx, claims)
	s.audit.Record(ctx, &claims.UserID, "", "logout", "", "", "")
}

// ChangePassword cambia la contraseña del propio usuario
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongOldPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("error al actualizar la contraseña", zap.Uint("user_id", userID), zap.Error(err))
		return err
	}

	s.audit.Record(ctx, &userID, user.Username, "cambio_contraseña", "", "", "")
	return nil
}

// Me devuelve el perfil del usuario autenticado
func (s *AuthService) Me(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) blacklist(ctx context.Context, claims *jwt.Claims) {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Warn("no se pudo agregar el token a la lista negra", zap.Error(err))
	}
}

func toUserResponse(user *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		OfficeID:  user.OfficeID,
		CreatedAt: user.CreatedAt.Format(timeLayout),
	}
	if user.Office != nil {
		resp.OfficeName = user.Office.Name
	}
	return resp
}
