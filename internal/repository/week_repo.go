package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/model"
)

// WeekRepository acceso a datos de semanas
type WeekRepository interface {
	Create(ctx context.Context, week *model.Week) error
	GetByID(ctx context.Context, id uint) (*model.Week, error)
	GetByTitle(ctx context.Context, title string) (*model.Week, error)
	List(ctx context.Context) ([]model.Week, error)
	Update(ctx context.Context, week *model.Week) error
	Delete(ctx context.Context, id uint) error
	// GetCurrent semana abierta cuyo plazo aún no venció, la más reciente
	GetCurrent(ctx context.Context, now time.Time) (*model.Week, error)
	// ListOverdue semanas abiertas con plazo vencido
	ListOverdue(ctx context.Context, now time.Time) ([]model.Week, error)
}

type weekRepo struct {
	db *gorm.DB
}

// NewWeekRepo crea la implementación GORM de WeekRepository
func NewWeekRepo(db *gorm.DB) WeekRepository {
	return &weekRepo{db: db}
}

func (r *weekRepo) Create(ctx context.Context, week *model.Week) error {
	return r.db.WithContext(ctx).Create(week).Error
}

func (r *weekRepo) GetByID(ctx context.Context, id uint) (*model.Week, error) {
	var week model.Week
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&week).Error; err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weekRepo) GetByTitle(ctx context.Context, title string) (*model.Week, error) {
	var week model.Week
	if err := r.db.WithContext(ctx).Where("title = ?", title).First(&week).Error; err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weekRepo) List(ctx context.Context) ([]model.Week, error) {
	var weeks []model.Week
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&weeks).Error
	if err != nil {
		return nil, err
	}
	return weeks, nil
}

func (r *weekRepo) Update(ctx context.Context, week *model.Week) error {
	return r.db.WithContext(ctx).Save(week).Error
}

func (r *weekRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Week{}, id).Error
}

func (r *weekRepo) GetCurrent(ctx context.Context, now time.Time) (*model.Week, error) {
	var week model.Week
	err := r.db.WithContext(ctx).
		Where("is_open = ? AND end_date > ?", true, now).
		Order("start_date DESC").
		First(&week).Error
	if err != nil {
		return nil, err
	}
	return &week, nil
}

func (r *weekRepo) ListOverdue(ctx context.Context, now time.Time) ([]model.Week, error) {
	var weeks []model.Week
	err := r.db.WithContext(ctx).
		Where("is_open = ? AND end_date <= ?", true, now).
		Order("end_date ASC").
		Find(&weeks).Error
	if err != nil {
		return nil, err
	}
	return weeks, nil
}
