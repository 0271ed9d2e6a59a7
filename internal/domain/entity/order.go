package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido (el admin puede moverlo a cualquier estado).
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus indica si s es uno de los cinco estados conocidos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Estados de pago.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

// Métodos de pago.
const (
	PaymentMethodCashOnDelivery = "CASH_ON_DELIVERY"
	PaymentMethodCard           = "CARD"
)

// Order es la foto inmutable de un carrito liquidado. TotalAmount queda
// congelado al momento de la creación; cambios posteriores de precio en el
// catálogo no lo alteran. Solo Status y PaymentStatus se mutan después.
type Order struct {
	ID              string
	OrderNumber     string // legible y único, ej. ORD-1724832000000-a3f2c1
	UserID          string
	TotalAmount     decimal.Decimal
	ShippingAddress string
	Phone           string
	Email           string
	Notes           string
	PaymentMethod   string // CASH_ON_DELIVERY | CARD
	PaymentStatus   string // PENDING | PAID | FAILED
	Status          string // PENDING | PROCESSING | SHIPPED | DELIVERED | CANCELLED
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem es la línea inmutable del pedido: cantidad y precio unitario
// congelados al momento de la compra, desacoplados del precio vivo del producto.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Subtotal devuelve precio congelado × cantidad de la línea.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
