package model

import "time"

// ExportLog registro de una planilla generada — tabla export_logs
// Es un registro lateral del archivo producido, no estado autoritativo.
type ExportLog struct {
	ID        uint      `gorm:"primaryKey"                 json:"id"`
	WeekID    uint      `gorm:"index"                      json:"week_id"`
	Filename  string    `gorm:"type:varchar(300);not null" json:"filename"`
	CreatedBy string    `gorm:"type:varchar(100)"          json:"created_by,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName nombre de la tabla
func (ExportLog) TableName() string { return "export_logs" }
