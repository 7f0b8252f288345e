package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository punto de entrada agregado de todos los repositorios
type Repository struct {
	User      UserRepository
	Office    OfficeRepository
	Week      WeekRepository
	MenuItem  MenuItemRepository
	Order     OrderRepository
	AuditLog  AuditLogRepository
	ExportLog ExportLogRepository

	db *gorm.DB
}

// NewRepository crea el agregado de repositorios
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:      NewUserRepo(db),
		Office:    NewOfficeRepo(db),
		Week:      NewWeekRepo(db),
		MenuItem:  NewMenuItemRepo(db),
		Order:     NewOrderRepo(db),
		AuditLog:  NewAuditLogRepo(db),
		ExportLog: NewExportLogRepo(db),
		db:        db,
	}
}

// Transaction ejecuta fn dentro de una transacción; el agregado que
// recibe fn opera sobre ella. Si el agregado se armó con repositorios
// inyectados (sin conexión subyacente), fn corre sin transacción real.
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
