package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart es el carrito de un usuario (1:1, creado perezosamente en el primer add).
// Persiste vacío tras la liquidación; solo sus items se eliminan.
type Cart struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem es una línea del carrito: par (cart, product) único, quantity >= 1.
// Una actualización que la deje en <= 0 elimina la fila, nunca se guarda en cero.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int64
	CreatedAt time.Time
}

// CartLine es una línea del carrito unida con el precio y stock actuales del
// producto, tal como la lee la liquidación dentro de su transacción.
type CartLine struct {
	ItemID      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal // precio vigente al momento de la lectura
	StockOnHand int64
}

// Subtotal devuelve precio unitario × cantidad de la línea.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
