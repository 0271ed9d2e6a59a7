package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest entrada para agregar un producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity"`
}

// UpdateCartItemRequest entrada para cambiar la cantidad de una línea.
// Cantidad <= 0 elimina la línea.
type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartItemResponse línea del carrito con el precio vigente del producto.
type CartItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito completo del usuario.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CartCountResponse badge de unidades en el carrito.
type CartCountResponse struct {
	Count int64 `json:"count"`
}
