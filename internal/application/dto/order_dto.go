package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest entrada para liquidar el carrito (contraentrega).
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Notes           string `json:"notes"`
}

// OrderItemResponse línea inmutable del pedido (precio congelado).
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	UserID          string              `json:"user_id"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	Phone           string              `json:"phone"`
	Email           string              `json:"email"`
	Notes           string              `json:"notes,omitempty"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest entrada para que el admin mueva el estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
