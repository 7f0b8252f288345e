package model

// Office oficina — agrupa usuarios y filtra los reportes de exportación
type Office struct {
	ID   uint   `gorm:"primaryKey"                  json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	BaseModel
}

// TableName nombre de la tabla
func (Office) TableName() string { return "offices" }
