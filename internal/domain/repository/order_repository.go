package repository

import "github.com/jhoicas/tienda-movil-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y OrderItem (DIP).
// Los pedidos son inmutables después de creados salvo Status y PaymentStatus.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItems(orderID string) ([]*entity.OrderItem, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	ListAll(limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
	UpdatePaymentStatus(id, paymentStatus string) error
	Count() (int64, error)
}
