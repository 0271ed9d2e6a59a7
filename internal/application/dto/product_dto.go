package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto (admin).
type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int64           `json:"stock"`
	Category      string          `json:"category" validate:"required"`
	Condition     string          `json:"condition"`
	SubCategory   string          `json:"sub_category"`
	Storage       string          `json:"storage"`
	RAM           string          `json:"ram"`
	BatteryHealth string          `json:"battery_health"`
	Images        json.RawMessage `json:"images"`
}

// UpdateProductRequest entrada para actualizar un producto (admin).
// Stock aquí es un overwrite absoluto; el decremento relativo lo hace solo la liquidación.
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Stock         *int64           `json:"stock"`
	Category      *string          `json:"category"`
	Condition     *string          `json:"condition"`
	SubCategory   *string          `json:"sub_category"`
	Storage       *string          `json:"storage"`
	RAM           *string          `json:"ram"`
	BatteryHealth *string          `json:"battery_health"`
	Images        json.RawMessage  `json:"images"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Stock         int64           `json:"stock"`
	Category      string          `json:"category"`
	Condition     string          `json:"condition"`
	SubCategory   string          `json:"sub_category,omitempty"`
	Storage       string          `json:"storage,omitempty"`
	RAM           string          `json:"ram,omitempty"`
	BatteryHealth string          `json:"battery_health,omitempty"`
	Images        json.RawMessage `json:"images,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
