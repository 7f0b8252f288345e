package model

import "time"

// AuditLog entrada de auditoría — tabla audit_logs
// Solo se agrega, nunca se modifica ni se borra.
type AuditLog struct {
	ID             uint      `gorm:"primaryKey"        json:"id"`
	ActorID        *uint     `gorm:""                  json:"actor_id,omitempty"`
	TargetUsername string    `gorm:"type:varchar(100)" json:"target_username,omitempty"`
	Action         string    `gorm:"type:varchar(100);not null" json:"action"`
	OldValue       string    `gorm:"type:text"         json:"old_value,omitempty"`
	NewValue       string    `gorm:"type:text"         json:"new_value,omitempty"`
	Details        string    `gorm:"type:text"         json:"details,omitempty"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName nombre de la tabla
func (AuditLog) TableName() string { return "audit_logs" }
