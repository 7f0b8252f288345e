package dto

// ── DTO del módulo de auditoría ──

// AuditLogResponse entrada del log de auditoría
type AuditLogResponse struct {
	ID             uint   `json:"id"`
	ActorID        *uint  `json:"actor_id,omitempty"`
	TargetUsername string `json:"target_username,omitempty"`
	Action         string `json:"action"`
	OldValue       string `json:"old_value,omitempty"`
	NewValue       string `json:"new_value,omitempty"`
	Details        string `json:"details,omitempty"`
	CreatedAt      string `json:"created_at"`
}
