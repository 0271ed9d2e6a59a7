package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo implementación del puerto ReviewRepository sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador de persistencia para reseñas.
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste una reseña. El constraint único (user_id, product_id)
// respalda la verificación previa del caso de uso ante carreras.
func (r *ReviewRepo) Create(review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, user_name, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		review.ID, review.UserID, review.UserName, review.ProductID, review.Rating, review.Comment, review.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// GetByUserAndProduct obtiene la reseña del usuario sobre el producto, o (nil, nil).
func (r *ReviewRepo) GetByUserAndProduct(userID, productID string) (*entity.Review, error) {
	query := `
		SELECT id, user_id, user_name, product_id, rating, comment, created_at
		FROM reviews WHERE user_id = $1 AND product_id = $2`
	var rev entity.Review
	err := r.q.QueryRow(context.Background(), query, userID, productID).Scan(
		&rev.ID, &rev.UserID, &rev.UserName, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &rev, nil
}

// ListByProduct lista las reseñas de un producto, más recientes primero.
func (r *ReviewRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, user_name, product_id, rating, comment, created_at
		FROM reviews WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Review
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.UserName, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rev)
	}
	return list, rows.Err()
}
