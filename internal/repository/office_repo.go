package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/model"
)

// OfficeRepository acceso a datos de oficinas
type OfficeRepository interface {
	Create(ctx context.Context, office *model.Office) error
	GetByID(ctx context.Context, id uint) (*model.Office, error)
	GetByName(ctx context.Context, name string) (*model.Office, error)
	List(ctx context.Context) ([]model.Office, error)
	Update(ctx context.Context, office *model.Office) error
	Delete(ctx context.Context, id uint) error
	// CountUsers cantidad de usuarios vinculados; bloquea el borrado
	CountUsers(ctx context.Context, id uint) (int64, error)
}

type officeRepo struct {
	db *gorm.DB
}

// NewOfficeRepo crea la implementación GORM de OfficeRepository
func NewOfficeRepo(db *gorm.DB) OfficeRepository {
	return &officeRepo{db: db}
}

func (r *officeRepo) Create(ctx context.Context, office *model.Office) error {
	return r.db.WithContext(ctx).Create(office).Error
}

func (r *officeRepo) GetByID(ctx context.Context, id uint) (*model.Office, error) {
	var office model.Office
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&office).Error; err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepo) GetByName(ctx context.Context, name string) (*model.Office, error) {
	var office model.Office
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&office).Error; err != nil {
		return nil, err
	}
	return &office, nil
}

func (r *officeRepo) List(ctx context.Context) ([]model.Office, error) {
	var offices []model.Office
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&offices).Error; err != nil {
		return nil, err
	}
	return offices, nil
}

func (r *officeRepo) Update(ctx context.Context, office *model.Office) error {
	return r.db.WithContext(ctx).Save(office).Error
}

func (r *officeRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Office{}, id).Error
}

func (r *officeRepo) CountUsers(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("office_id = ?", id).
		Count(&count).Error
	return count, err
}
