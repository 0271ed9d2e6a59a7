package checkout

import (
	"context"

	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la liquidación del carrito
// (pedido + decrementos de stock + vaciado) se aplique todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
