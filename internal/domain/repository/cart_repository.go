package repository

import "github.com/jhoicas/tienda-movil-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para Cart y sus items (DIP).
type CartRepository interface {
	GetByUserID(userID string) (*entity.Cart, error)
	Create(cart *entity.Cart) error
	GetItem(cartID, productID string) (*entity.CartItem, error)
	CreateItem(item *entity.CartItem) error
	UpdateItemQuantity(itemID string, quantity int64) error
	DeleteItem(itemID string) error
	ListItems(cartID string) ([]*entity.CartItem, error)
	// DeleteItems vacía el carrito (la fila del carrito persiste).
	DeleteItems(cartID string) error
	// CountUnits suma las cantidades de todos los items del usuario (badge del carrito).
	CountUnits(userID string) (int64, error)
	// LinesForUpdate lee las líneas del carrito unidas con el precio actual del
	// producto bloqueando las filas (SELECT FOR UPDATE). Dos liquidaciones
	// concurrentes del mismo carrito se serializan aquí: la perdedora ve el
	// carrito ya vacío.
	LinesForUpdate(cartID string) ([]entity.CartLine, error)
}
