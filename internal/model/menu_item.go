package model

// Franjas de comida de cada día
const (
	SlotPrincipal = "principal"
	SlotSide      = "side"
	SlotSalad     = "salad"
)

// MealSlots franjas en orden canónico (principal → acompañamiento → ensalada)
var MealSlots = []string{SlotPrincipal, SlotSide, SlotSalad}

// IsMealSlot indica si el código pertenece a las tres franjas válidas.
func IsMealSlot(slot string) bool {
	for _, s := range MealSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// MenuItem opción del menú publicada — tabla menu_items
// Pertenece exclusivamente a su semana; se elimina en cascada con ella.
// option_number y description son únicos dentro de (week, day, slot).
type MenuItem struct {
	ID           uint   `gorm:"primaryKey"                 json:"id"`
	WeekID       uint   `gorm:"not null;index"             json:"week_id"`
	Day          string `gorm:"type:varchar(12);not null"  json:"day"`
	Slot         string `gorm:"type:varchar(12);not null"  json:"slot"`
	OptionNumber int    `gorm:"not null;default:1"         json:"option_number"`
	Description  string `gorm:"type:varchar(500);not null" json:"description"`
	BaseModel
}

// TableName nombre de la tabla
func (MenuItem) TableName() string { return "menu_items" }
