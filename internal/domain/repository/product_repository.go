package repository

import "github.com/jhoicas/tienda-movil-api/internal/domain/entity"

// ProductFilter filtros para el listado del catálogo.
type ProductFilter struct {
	Category string // vacío = todas
	Search   string // ya normalizado (pkg/search)
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// DecrementStock es un ajuste relativo atómico (stock = stock - qty con guarda
// stock >= qty) para que la liquidación nunca haga read-modify-write; el
// overwrite absoluto del admin va por Update.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(filter ProductFilter) ([]*entity.Product, error)
	Count() (int64, error)
	// DecrementStock descuenta quantity si hay existencias suficientes.
	// Devuelve domain.ErrInsufficientStock si la guarda no se cumple.
	DecrementStock(productID string, quantity int64) error
}
