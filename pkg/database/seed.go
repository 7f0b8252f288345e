package database

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/config"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
)

// SeedAdmin crea el usuario administrador inicial si no existe.
// Con contraseña vacía en la configuración no se crea nada.
func SeedAdmin(db *gorm.DB, cfg *config.SeedConfig, logger *zap.Logger) error {
	if cfg.AdminPassword == "" {
		return nil
	}

	var existing model.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil // ya existe
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("error al verificar el usuario admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error al hashear la contraseña del admin: %w", err)
	}

	admin := model.User{
		Username:     cfg.AdminUsername,
		FullName:     cfg.AdminFullName,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("error al crear el usuario admin: %w", err)
	}

	logger.Info("usuario admin inicial creado", zap.String("username", cfg.AdminUsername))
	return nil
}
