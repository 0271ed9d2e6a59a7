package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
)

// CheckoutLine línea informativa que se envía al proveedor de pagos.
type CheckoutLine struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CheckoutInit datos para iniciar un checkout alojado en el proveedor.
type CheckoutInit struct {
	UserID string
	Email  string
	Amount decimal.Decimal
	Lines  []CheckoutLine
}

// CheckoutSession sesión de pago creada por el proveedor: el comprador se
// redirige a PaymentPageURL y el proveedor regresa al callback con Token.
type CheckoutSession struct {
	Token          string
	PaymentPageURL string
}

// Result resultado de resolver un token en el proveedor.
type Result struct {
	Paid      bool
	PaymentID string
	Message   string
}

// Provider es el puerto hacia la pasarela de pagos con tarjeta.
type Provider interface {
	InitCheckout(ctx context.Context, in CheckoutInit) (*CheckoutSession, error)
	Resolve(ctx context.Context, token string) (*Result, error)
}

// Settler liquida el carrito como pedido pagado con tarjeta.
// Lo implementa checkout.SettleUseCase.
type Settler interface {
	SettlePaid(ctx context.Context, userID, email string, in dto.CheckoutRequest) (*dto.OrderResponse, error)
}
