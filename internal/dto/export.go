package dto

// ── DTO del módulo de exportación ──

// ExportResponse resultado de una exportación
type ExportResponse struct {
	Path     string `json:"path"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// ExportLogResponse registro de una planilla generada
type ExportLogResponse struct {
	ID        uint   `json:"id"`
	WeekID    uint   `json:"week_id"`
	Filename  string `json:"filename"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt string `json:"created_at"`
}
