package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/model"
)

// ExportLogRepository registro de planillas generadas
type ExportLogRepository interface {
	Create(ctx context.Context, entry *model.ExportLog) error
	ListByWeek(ctx context.Context, weekID uint) ([]model.ExportLog, error)
	DeleteByWeek(ctx context.Context, weekID uint) error
}

type exportLogRepo struct {
	db *gorm.DB
}

// NewExportLogRepo crea la implementación GORM de ExportLogRepository
func NewExportLogRepo(db *gorm.DB) ExportLogRepository {
	return &exportLogRepo{db: db}
}

func (r *exportLogRepo) Create(ctx context.Context, entry *model.ExportLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *exportLogRepo) ListByWeek(ctx context.Context, weekID uint) ([]model.ExportLog, error) {
	var entries []model.ExportLog
	err := r.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *exportLogRepo) DeleteByWeek(ctx context.Context, weekID uint) error {
	return r.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Delete(&model.ExportLog{}).Error
}
