package order

import (
	"strings"

	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// ReceiptGenerator genera el comprobante PDF de un pedido.
type ReceiptGenerator interface {
	GenerateReceipt(order *entity.Order, items []*entity.OrderItem) ([]byte, error)
}

// OrderUseCase lectura de pedidos y administración de estados.
// La creación de pedidos vive en el paquete checkout.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	receipts  ReceiptGenerator
}

// NewOrderUseCase construye el caso de uso de pedidos.
func NewOrderUseCase(orderRepo repository.OrderRepository, receipts ReceiptGenerator) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, receipts: receipts}
}

// ListByUser lista los pedidos del usuario autenticado.
func (uc *OrderUseCase) ListByUser(userID string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	orders, err := uc.orderRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(orders, page)
}

// ListAll lista todos los pedidos (admin).
func (uc *OrderUseCase) ListAll(page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.ListAll(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toListResponse(orders, page)
}

// GetByID devuelve un pedido con sus líneas. Un usuario solo ve sus propios
// pedidos; el admin (isAdmin) ve cualquiera. El pedido ajeno responde como
// inexistente para no revelar su existencia.
func (uc *OrderUseCase) GetByID(userID, orderID string, isAdmin bool) (*dto.OrderResponse, error) {
	if userID == "" && !isAdmin {
		return nil, domain.ErrUnauthorized
	}
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || (!isAdmin && o.UserID != userID) {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItems(o.ID)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o, items)
	return &resp, nil
}

// Receipt genera el comprobante PDF de un pedido, con la misma regla de
// propiedad que GetByID.
func (uc *OrderUseCase) Receipt(userID, orderID string, isAdmin bool) ([]byte, string, error) {
	if userID == "" && !isAdmin {
		return nil, "", domain.ErrUnauthorized
	}
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	if o == nil || (!isAdmin && o.UserID != userID) {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItems(o.ID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.receipts.GenerateReceipt(o, items)
	if err != nil {
		return nil, "", err
	}
	return pdf, o.OrderNumber + ".pdf", nil
}

// UpdateStatus mueve el estado de un pedido (admin). Las transiciones son
// libres entre los cinco estados conocidos.
func (uc *OrderUseCase) UpdateStatus(orderID string, in dto.UpdateOrderStatusRequest) error {
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if !entity.ValidOrderStatus(status) {
		return domain.ErrInvalidInput
	}
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.UpdateStatus(orderID, status)
}

func (uc *OrderUseCase) toListResponse(orders []*entity.Order, page dto.PageRequest) (*dto.OrderListResponse, error) {
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		lines, err := uc.orderRepo.GetItems(o.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, toOrderResponse(o, lines))
	}
	total, err := uc.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) dto.OrderResponse {
	lines := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		lines = append(lines, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return dto.OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		Phone:           o.Phone,
		Email:           o.Email,
		Notes:           o.Notes,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		Status:          o.Status,
		Items:           lines,
		CreatedAt:       o.CreatedAt,
	}
}
