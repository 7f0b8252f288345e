package dto

// ── DTO del módulo de oficinas ──

// CreateOfficeRequest alta de oficina
type CreateOfficeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateOfficeRequest renombre de oficina
type UpdateOfficeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// OfficeResponse información de una oficina
type OfficeResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	UserCount int64  `json:"user_count"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
