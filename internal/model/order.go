package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Estados de un pedido
const (
	StatusConfirmed = "confirmado"  // primer envío del usuario
	StatusUpdated   = "actualizado" // reemplazo de un pedido existente
	StatusNoOrder   = "no_pedido"   // registro sintetizado al finalizar la semana
)

// DetailKey arma la clave "{día}_{franja}" del mapa de selecciones.
func DetailKey(day, slot string) string {
	return day + "_" + slot
}

// DetailKeys las 15 claves canónicas (5 días × 3 franjas) en orden fijo.
func DetailKeys() []string {
	keys := make([]string, 0, len(WeekDays)*len(MealSlots))
	for _, day := range WeekDays {
		for _, slot := range MealSlots {
			keys = append(keys, DetailKey(day, slot))
		}
	}
	return keys
}

// OrderDetails mapa de selecciones del pedido, persistido como JSONB.
// Cada clave "{día}_{franja}" apunta al id de un MenuItem, o nil
// cuando ese día/franja no lleva comida.
// Implementa Scanner/Valuer para GORM.
type OrderDetails map[string]*uint

// Scan deserializa el JSONB de PostgreSQL.
func (d *OrderDetails) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("OrderDetails.Scan: tipo no soportado %T", src)
	}
	return json.Unmarshal(data, d)
}

// Value serializa el mapa como JSON.
func (d OrderDetails) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// EmptyDetails mapa con las 15 claves canónicas, todas en nil.
// Se usa para los registros "no_pedido" (incluye también los días feriados,
// para que el histórico quede completo).
func EmptyDetails() OrderDetails {
	details := make(OrderDetails, len(WeekDays)*len(MealSlots))
	for _, key := range DetailKeys() {
		details[key] = nil
	}
	return details
}

// Order pedido semanal de un usuario — tabla orders
// Restricción: a lo sumo un pedido por (user_id, week_id).
type Order struct {
	ID      uint         `gorm:"primaryKey"                                    json:"id"`
	UserID  uint         `gorm:"not null;uniqueIndex:uq_order_per_week"        json:"user_id"`
	WeekID  uint         `gorm:"not null;uniqueIndex:uq_order_per_week;index"  json:"week_id"`
	Status  string       `gorm:"type:varchar(20);not null;default:'confirmado'" json:"status"`
	Details OrderDetails `gorm:"type:jsonb;not null"                           json:"details"`
	Notes   string       `gorm:"type:text"                                     json:"notes"`
	BaseModel

	// Asociaciones
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName nombre de la tabla
func (Order) TableName() string { return "orders" }
