package model

// Roles de usuario
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User usuario del sistema — tabla users
// Los usuarios nunca se eliminan físicamente: se desactivan con is_active.
type User struct {
	ID           uint   `gorm:"primaryKey"                              json:"id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex"  json:"username"`
	FullName     string `gorm:"type:varchar(200);not null"              json:"full_name"`
	PasswordHash string `gorm:"type:varchar(255);not null"              json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                   json:"is_active"`
	OfficeID     *uint  `gorm:"index"                                   json:"office_id,omitempty"`
	BaseModel

	// Asociaciones
	Office *Office `gorm:"foreignKey:OfficeID" json:"office,omitempty"`
}

// TableName nombre de la tabla
func (User) TableName() string { return "users" }
