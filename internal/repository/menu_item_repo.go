package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/model"
)

// MenuItemRepository acceso a datos de opciones de menú
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	GetByID(ctx context.Context, id uint) (*model.MenuItem, error)
	// GetByOption busca por (semana, día, franja, número de opción)
	GetByOption(ctx context.Context, weekID uint, day, slot string, optionNumber int) (*model.MenuItem, error)
	// GetByDescription busca por (semana, día, franja, descripción)
	GetByDescription(ctx context.Context, weekID uint, day, slot, description string) (*model.MenuItem, error)
	ListByWeek(ctx context.Context, weekID uint) ([]model.MenuItem, error)
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, id uint) error
	DeleteByWeek(ctx context.Context, weekID uint) error
}

type menuItemRepo struct {
	db *gorm.DB
}

// NewMenuItemRepo crea la implementación GORM de MenuItemRepository
func NewMenuItemRepo(db *gorm.DB) MenuItemRepository {
	return &menuItemRepo{db: db}
}

func (r *menuItemRepo) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepo) GetByID(ctx context.Context, id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepo) GetByOption(ctx context.Context, weekID uint, day, slot string, optionNumber int) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).
		Where("week_id = ? AND day = ? AND slot = ? AND option_number = ?",
			weekID, day, slot, optionNumber).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepo) GetByDescription(ctx context.Context, weekID uint, day, slot, description string) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).
		Where("week_id = ? AND day = ? AND slot = ? AND description = ?",
			weekID, day, slot, description).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepo) ListByWeek(ctx context.Context, weekID uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Order("day ASC, slot ASC, option_number ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuItemRepo) Update(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuItemRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}

func (r *menuItemRepo) DeleteByWeek(ctx context.Context, weekID uint) error {
	return r.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Delete(&model.MenuItem{}).Error
}
