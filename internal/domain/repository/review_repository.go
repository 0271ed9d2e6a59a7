package repository

import "github.com/jhoicas/tienda-movil-api/internal/domain/entity"

// ReviewRepository define el puerto de persistencia para Review (DIP).
type ReviewRepository interface {
	Create(review *entity.Review) error
	// GetByUserAndProduct devuelve la reseña existente o (nil, nil) si no hay.
	GetByUserAndProduct(userID, productID string) (*entity.Review, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Review, error)
}
