package dto

// ── DTO del módulo de pedidos ──

// SubmitOrderRequest envío del pedido semanal.
// selections debe traer el mapa completo de la semana (las claves que
// falten se guardan como nulas): el guardado reemplaza el documento
// entero, no fusiona con el pedido anterior.
type SubmitOrderRequest struct {
	Selections map[string]*uint `json:"selections" binding:"required"`
	Notes      string           `json:"notes"      binding:"omitempty,max=1000"`
}

// OrderResponse información de un pedido
type OrderResponse struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"user_id"`
	WeekID    uint             `json:"week_id"`
	Status    string           `json:"status"`
	Details   map[string]*uint `json:"details"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt string           `json:"created_at"`
	UpdatedAt string           `json:"updated_at"`
}

// ── Monitor de cumplimiento ──

// ComplianceUser usuario activo sin pedido en la semana
type ComplianceUser struct {
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Office   string `json:"office"`
}

// ComplianceIncomplete usuario con pedido al que le faltan días
// (días sin plato principal, excluyendo feriados)
type ComplianceIncomplete struct {
	FullName    string   `json:"full_name"`
	Office      string   `json:"office"`
	MissingDays []string `json:"missing_days"`
}

// ComplianceReport resumen de cumplimiento de una semana
type ComplianceReport struct {
	WeekID     uint                   `json:"week_id"`
	NoOrder    []ComplianceUser       `json:"no_order"`
	Incomplete []ComplianceIncomplete `json:"incomplete"`
}
