package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Categorías y condición del producto.
const (
	CategoryPhone     = "PHONE"
	CategoryAccessory = "ACCESSORY"

	ConditionNew  = "NEW"
	ConditionUsed = "USED"
)

// Product representa un teléfono o accesorio del catálogo.
// Stock se muta por dos vías que no deben pisarse: el ajuste absoluto del admin
// y el decremento relativo atómico que aplica la liquidación del checkout.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta, >= 0
	Stock         int64           // unidades disponibles, >= 0
	Category      string          // PHONE | ACCESSORY
	Condition     string          // NEW | USED
	SubCategory   string
	Storage       string
	RAM           string
	BatteryHealth string
	Images        json.RawMessage // array JSON de rutas de imagen (opaco para el core)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
