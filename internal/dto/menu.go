package dto

// ── DTO del módulo de menú ──

// CreateMenuItemRequest alta de una opción del menú
type CreateMenuItemRequest struct {
	Day          string `json:"day"           binding:"required,oneof=monday tuesday wednesday thursday friday"`
	Slot         string `json:"slot"          binding:"required,oneof=principal side salad"`
	OptionNumber int    `json:"option_number" binding:"required,min=1,max=10"`
	Description  string `json:"description"   binding:"required,min=2,max=500"`
}

// UpdateMenuItemRequest actualización de una opción del menú
type UpdateMenuItemRequest struct {
	OptionNumber *int    `json:"option_number" binding:"omitempty,min=1,max=10"`
	Description  *string `json:"description"   binding:"omitempty,min=2,max=500"`
}

// MenuOption una opción dentro del catálogo estructurado
type MenuOption struct {
	ID           uint   `json:"id"`
	OptionNumber int    `json:"option_number"`
	Description  string `json:"description"`
}

// MenuCatalog catálogo de la semana: día → franja → opciones ordenadas
// por número de opción
type MenuCatalog map[string]map[string][]MenuOption

// MenuItemResponse información de una opción del menú
type MenuItemResponse struct {
	ID           uint   `json:"id"`
	WeekID       uint   `json:"week_id"`
	Day          string `json:"day"`
	Slot         string `json:"slot"`
	OptionNumber int    `json:"option_number"`
	Description  string `json:"description"`
}
