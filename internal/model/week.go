package model

import "time"

// Códigos de día de servicio (lunes a viernes). Son las claves de
// almacenamiento; las etiquetas en castellano viven en la exportación.
const (
	DayMonday    = "monday"
	DayTuesday   = "tuesday"
	DayWednesday = "wednesday"
	DayThursday  = "thursday"
	DayFriday    = "friday"
)

// WeekDays días de servicio en orden canónico
var WeekDays = []string{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday}

// IsWeekDay indica si el código pertenece al conjunto fijo de 5 días.
func IsWeekDay(day string) bool {
	for _, d := range WeekDays {
		if d == day {
			return true
		}
	}
	return false
}

// Week semana de pedidos — tabla weeks
// Ciclo de vida: abierta (acepta pedidos) → cerrada → finalizada
// (con registros "no_pedido" sintetizados y planilla generada).
// end_date es la fecha y hora límite para pedir, en UTC-3.
type Week struct {
	ID          uint        `gorm:"primaryKey"                             json:"id"`
	Title       string      `gorm:"type:varchar(200);not null;uniqueIndex" json:"title"`
	StartDate   time.Time   `gorm:"type:date;not null"                     json:"start_date"`
	EndDate     time.Time   `gorm:"not null"                               json:"end_date"`
	IsOpen      bool        `gorm:"not null;default:true"                  json:"is_open"`
	IsFinalized bool        `gorm:"not null;default:false"                 json:"is_finalized"`
	ClosedDays  StringArray `gorm:"type:text[];not null;default:'{}'"      json:"closed_days"`
	BaseModel

	// Asociaciones
	MenuItems []MenuItem `gorm:"foreignKey:WeekID;constraint:OnDelete:CASCADE" json:"menu_items,omitempty"`
}

// TableName nombre de la tabla
func (Week) TableName() string { return "weeks" }

// IsAcceptingOrders indica si la semana acepta pedidos en el instante dado.
// El bloqueo por día feriado se resuelve a nivel de día, no acá.
func (w *Week) IsAcceptingOrders(now time.Time) bool {
	return w.IsOpen && now.Before(w.EndDate)
}

// IsDayClosed indica si el día está marcado sin servicio (feriado).
func (w *Week) IsDayClosed(day string) bool {
	return w.ClosedDays.Contains(day)
}
