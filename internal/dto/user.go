package dto

// ── DTO del módulo de usuarios ──

// CreateUserRequest alta de usuario (acción de admin)
type CreateUserRequest struct {
	Username string `json:"username"  binding:"required,min=2,max=100"`
	FullName string `json:"full_name" binding:"required,min=2,max=200"`
	Password string `json:"password"  binding:"required,min=4,max=72"`
	Role     string `json:"role"      binding:"omitempty,oneof=admin user"`
	OfficeID *uint  `json:"office_id"`
}

// UpdateUserRequest actualización de perfil (acción de admin)
type UpdateUserRequest struct {
	Username *string `json:"username"  binding:"omitempty,min=2,max=100"`
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=200"`
	Role     *string `json:"role"      binding:"omitempty,oneof=admin user"`
	IsActive *bool   `json:"is_active"`
	OfficeID *uint   `json:"office_id"`
}

// ResetPasswordRequest reseteo de contraseña por un admin
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=4,max=72"`
}

// UserListRequest filtros de listado
type UserListRequest struct {
	OfficeID        *uint `form:"office_id"`
	IncludeInactive bool  `form:"include_inactive"`
}

// UserResponse información de un usuario
type UserResponse struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	IsActive   bool   `json:"is_active"`
	OfficeID   *uint  `json:"office_id,omitempty"`
	OfficeName string `json:"office_name,omitempty"`
	CreatedAt  string `json:"created_at"`
}
