package dto

// ── DTO del módulo de semanas ──

// CreateWeekRequest alta de semana
// end_date es la fecha y hora límite para pedir ("2006-01-02T15:04",
// interpretada en UTC-3); start_date es solo fecha ("2006-01-02").
type CreateWeekRequest struct {
	Title      string   `json:"title"       binding:"required,min=2,max=200"`
	StartDate  string   `json:"start_date"  binding:"required"`
	EndDate    string   `json:"end_date"    binding:"required"`
	ClosedDays []string `json:"closed_days" binding:"omitempty,dive,oneof=monday tuesday wednesday thursday friday"`
}

// WeekResponse información de una semana
type WeekResponse struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	IsOpen      bool     `json:"is_open"`
	IsFinalized bool     `json:"is_finalized"`
	ClosedDays  []string `json:"closed_days"`
	CreatedAt   string   `json:"created_at"`
}

// FinalizeWeekResponse resultado de la finalización
type FinalizeWeekResponse struct {
	Week         WeekResponse `json:"week"`
	Placeholders int          `json:"placeholders"`
	ExportPath   string       `json:"export_path"`
	Message      string       `json:"message"`
}

// CurrentWeekResponse semana abierta con todo lo necesario para el
// formulario de pedido: menú estructurado y pedido propio si existe
type CurrentWeekResponse struct {
	Week    WeekResponse   `json:"week"`
	Menu    MenuCatalog    `json:"menu"`
	MyOrder *OrderResponse `json:"my_order,omitempty"`
}
