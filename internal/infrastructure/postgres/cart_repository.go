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

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador de persistencia para carritos.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetByUserID obtiene el carrito del usuario, o (nil, nil) si nunca agregó nada.
func (r *CartRepo) GetByUserID(userID string) (*entity.Cart, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &c, nil
}

// Create persiste un carrito nuevo. Uno por usuario.
func (r *CartRepo) Create(cart *entity.Cart) error {
	query := `INSERT INTO carts (id, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetItem obtiene la línea de un producto en el carrito, o (nil, nil).
func (r *CartRepo) GetItem(cartID, productID string) (*entity.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, created_at
		FROM cart_items WHERE cart_id = $1 AND product_id = $2`
	var it entity.CartItem
	err := r.q.QueryRow(context.Background(), query, cartID, productID).Scan(
		&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}

// CreateItem persiste una línea nueva del carrito.
func (r *CartRepo) CreateItem(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// UpdateItemQuantity fija la cantidad de una línea.
func (r *CartRepo) UpdateItemQuantity(itemID string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cart_items SET quantity = $2 WHERE id = $1`, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea del carrito.
func (r *CartRepo) DeleteItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// ListItems lista las líneas de un carrito.
func (r *CartRepo) ListItems(cartID string) ([]*entity.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, created_at
		FROM cart_items WHERE cart_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// DeleteItems vacía el carrito. La fila del carrito persiste.
func (r *CartRepo) DeleteItems(cartID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	return nil
}

// CountUnits suma las cantidades del carrito del usuario (badge de la tienda).
func (r *CartRepo) CountUnits(userID string) (int64, error) {
	query := `
		SELECT coalesce(sum(ci.quantity), 0)
		FROM cart_items ci JOIN carts c ON c.id = ci.cart_id
		WHERE c.user_id = $1`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cart units: %w", err)
	}
	return n, nil
}

// LinesForUpdate lee las líneas del carrito con el precio y stock actual del
// producto, bloqueando las filas de ambas tablas (FOR UPDATE). Dos
// liquidaciones concurrentes del mismo carrito se serializan aquí: la que
// llega segunda ve el carrito ya vacío.
func (r *CartRepo) LinesForUpdate(cartID string) ([]entity.CartLine, error) {
	query := `
		SELECT ci.id, ci.product_id, p.name, ci.quantity, p.price, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.product_id
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("lock cart lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.ItemID, &l.ProductID, &l.ProductName, &l.Quantity, &l.UnitPrice, &l.StockOnHand); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
