package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/model"
)

// OrderRepository acceso a datos de pedidos
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	GetByUserAndWeek(ctx context.Context, userID, weekID uint) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	// ListByWeek pedidos de la semana con usuario y oficina precargados;
	// officeID filtra por oficina del usuario si no es nil
	ListByWeek(ctx context.Context, weekID uint, officeID *uint) ([]model.Order, error)
	// BatchCreate inserta los placeholders de la finalización en lote
	BatchCreate(ctx context.Context, orders []model.Order) error
	DeleteByWeek(ctx context.Context, weekID uint) error
	CountByWeek(ctx context.Context, weekID uint) (int64, error)
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo crea la implementación GORM de OrderRepository
func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) GetByUserAndWeek(ctx context.Context, userID, weekID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_id = ?", userID, weekID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepo) ListByWeek(ctx context.Context, weekID uint, officeID *uint) ([]model.Order, error) {
	db := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Office").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.week_id = ?", weekID)

	if officeID != nil {
		db = db.Where("users.office_id = ?", *officeID)
	}

	var orders []model.Order
	if err := db.Order("users.full_name ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) BatchCreate(ctx context.Context, orders []model.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&orders).Error
}

func (r *orderRepo) DeleteByWeek(ctx context.Context, weekID uint) error {
	return r.db.WithContext(ctx).
		Where("week_id = ?", weekID).
		Delete(&model.Order{}).Error
}

func (r *orderRepo) CountByWeek(ctx context.Context, weekID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("week_id = ?", weekID).
		Count(&count).Error
	return count, err
}
