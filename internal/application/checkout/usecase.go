package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// SettleUseCase convierte un carrito no vacío en un pedido durable dentro de
// una sola transacción: congela precios y total, crea Order + OrderItems,
// descuenta stock con ajuste relativo atómico y vacía el carrito. Cualquier
// fallo intermedio hace rollback completo; nunca se observa estado parcial.
//
// La doble liquidación del mismo carrito (doble submit del formulario) se
// resuelve bloqueando las líneas con SELECT FOR UPDATE: la segunda transacción
// espera a la primera y al despertar encuentra el carrito vacío (ErrEmptyCart).
type SettleUseCase struct {
	txRunner TxRunner
	cartRepo repository.CartRepository
}

// NewSettleUseCase construye el caso de uso.
func NewSettleUseCase(txRunner TxRunner, cartRepo repository.CartRepository) *SettleUseCase {
	return &SettleUseCase{txRunner: txRunner, cartRepo: cartRepo}
}

// PlaceOrder liquida el carrito del usuario con pago contraentrega.
// El pedido queda PENDING con pago PENDING.
func (uc *SettleUseCase) PlaceOrder(ctx context.Context, userID, email string, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	return uc.settle(ctx, userID, email, in, entity.PaymentMethodCashOnDelivery, entity.PaymentStatusPending)
}

// SettlePaid liquida el carrito tras un pago con tarjeta ya confirmado por el
// proveedor (callback resuelto): el pedido nace con pago PAID.
func (uc *SettleUseCase) SettlePaid(ctx context.Context, userID, email string, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	return uc.settle(ctx, userID, email, in, entity.PaymentMethodCard, entity.PaymentStatusPaid)
}

func (uc *SettleUseCase) settle(
	ctx context.Context,
	userID, email string,
	in dto.CheckoutRequest,
	paymentMethod, paymentStatus string,
) (*dto.OrderResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.ShippingAddress) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, domain.ErrInvalidInput
	}

	// El carrito se resuelve fuera de la tx (solo lectura). Sin carrito creado
	// todavía no hay nada que liquidar.
	cart, err := uc.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrEmptyCart
	}

	now := time.Now()
	var order *entity.Order
	var items []*entity.OrderItem

	err = uc.txRunner.Run(ctx, func(
		cartRepo repository.CartRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		// 1) Leer las líneas con el precio vigente bloqueando las filas.
		// La re-verificación de no-vacío ocurre DESPUÉS del lock: el perdedor
		// de una carrera ve el carrito ya vaciado por el ganador.
		lines, err := cartRepo.LinesForUpdate(cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		// 2) Verificación de existencias sobre la lectura bloqueada, antes de
		// escribir nada. El decremento condicional del paso 4 sigue siendo la
		// barrera final contra carreras.
		for _, l := range lines {
			if l.StockOnHand < l.Quantity {
				return domain.ErrInsufficientStock
			}
		}

		// 3) Total con precios leídos en este instante; quedan congelados en el pedido.
		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.Subtotal())
		}

		// 4) Cabecera del pedido.
		order = &entity.Order{
			ID:              uuid.New().String(),
			OrderNumber:     newOrderNumber(now),
			UserID:          userID,
			TotalAmount:     total,
			ShippingAddress: in.ShippingAddress,
			Phone:           in.Phone,
			Email:           email,
			Notes:           in.Notes,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   paymentStatus,
			Status:          entity.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		// 5) Una línea inmutable por item, más el decremento relativo de stock.
		// Sin existencias suficientes se rechaza toda la liquidación (rollback);
		// el stock nunca queda negativo.
		for _, l := range lines {
			item := &entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   l.ProductID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				UnitPrice:   l.UnitPrice,
			}
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			if err := productRepo.DecrementStock(l.ProductID, l.Quantity); err != nil {
				return err
			}
			items = append(items, item)
		}

		// 6) Vaciar el carrito; la fila del carrito persiste.
		return cartRepo.DeleteItems(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(order, items), nil
}

// newOrderNumber genera un número legible y con colisión despreciable:
// milisegundos unix + sufijo aleatorio. El índice único sobre order_number
// es el respaldo final.
func newOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
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
		Items:           make([]dto.OrderItemResponse, 0, len(items)),
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return resp
}
