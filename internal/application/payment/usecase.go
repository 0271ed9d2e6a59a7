package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// pendingTTL tiempo máximo que un checkout iniciado espera su callback.
const pendingTTL = 2 * time.Hour

// pending datos capturados al iniciar el pago, pendientes de que el proveedor
// confirme vía callback. amount y lines son lo que el proveedor cobró; si el
// carrito cambia antes del callback, la liquidación se rechaza.
type pending struct {
	userID    string
	email     string
	shipping  dto.CheckoutRequest
	amount    decimal.Decimal
	lines     []CheckoutLine
	createdAt time.Time
}

// PaymentUseCase pago con tarjeta vía checkout alojado: Init crea la sesión
// en el proveedor y HandleCallback liquida el carrito cuando el pago se
// confirma. El carrito no se toca hasta la confirmación.
type PaymentUseCase struct {
	provider    Provider
	settler     Settler
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository

	mu      sync.Mutex
	pending map[string]pending // por token del proveedor
}

// NewPaymentUseCase construye el caso de uso de pagos.
func NewPaymentUseCase(provider Provider, settler Settler, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *PaymentUseCase {
	return &PaymentUseCase{
		provider:    provider,
		settler:     settler,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pending:     map[string]pending{},
	}
}

// Init crea una sesión de pago en el proveedor a partir del carrito vigente.
// El pedido todavía no existe; se crea en HandleCallback si el pago pasa.
func (uc *PaymentUseCase) Init(ctx context.Context, userID, email string, in dto.InitPaymentRequest) (*dto.InitPaymentResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.ShippingAddress) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, domain.ErrInvalidInput
	}

	total, lines, err := uc.cartLines(userID)
	if err != nil {
		return nil, err
	}

	session, err := uc.provider.InitCheckout(ctx, CheckoutInit{
		UserID: userID,
		Email:  email,
		Amount: total,
		Lines:  lines,
	})
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	uc.sweepLocked()
	uc.pending[session.Token] = pending{
		userID: userID,
		email:  email,
		shipping: dto.CheckoutRequest{
			ShippingAddress: in.ShippingAddress,
			Phone:           in.Phone,
			Notes:           in.Notes,
		},
		amount:    total,
		lines:     lines,
		createdAt: time.Now(),
	}
	uc.mu.Unlock()

	return &dto.InitPaymentResponse{PaymentPageURL: session.PaymentPageURL, Token: session.Token}, nil
}

// HandleCallback resuelve el token con el proveedor. Si el pago pasó, liquida
// el carrito como pedido CARD/PAID; si no, el carrito queda intacto.
func (uc *PaymentUseCase) HandleCallback(ctx context.Context, in dto.PaymentCallbackRequest) (*dto.PaymentResultResponse, error) {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return nil, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	p, ok := uc.pending[token]
	uc.mu.Unlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	result, err := uc.provider.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if !result.Paid {
		// El token se conserva: el comprador puede reintentar el pago en la
		// misma sesión del proveedor.
		return &dto.PaymentResultResponse{Paid: false, Message: result.Message}, nil
	}

	// El carrito debe seguir siendo exactamente lo que el proveedor cobró.
	// Si cambió entre Init y el callback, liquidar haría nacer un pedido PAID
	// por un monto distinto al pagado: se rechaza dejando carrito y token
	// intactos para que el comprador reinicie el pago.
	total, lines, err := uc.cartLines(p.userID)
	if err != nil {
		return nil, err
	}
	if !total.Equal(p.amount) || !sameLines(p.lines, lines) {
		return nil, domain.ErrConflict
	}

	order, err := uc.settler.SettlePaid(ctx, p.userID, p.email, p.shipping)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	delete(uc.pending, token)
	uc.mu.Unlock()

	return &dto.PaymentResultResponse{
		Paid:        true,
		PaymentID:   result.PaymentID,
		OrderNumber: order.OrderNumber,
	}, nil
}

// cartLines materializa el carrito vigente del usuario como líneas de cobro
// con precios actuales, junto con su total. Carrito inexistente o vacío es
// ErrEmptyCart.
func (uc *PaymentUseCase) cartLines(userID string) (decimal.Decimal, []CheckoutLine, error) {
	cart, err := uc.cartRepo.GetByUserID(userID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if cart == nil {
		return decimal.Zero, nil, domain.ErrEmptyCart
	}
	items, err := uc.cartRepo.ListItems(cart.ID)
	if err != nil {
		return decimal.Zero, nil, err
	}
	if len(items) == 0 {
		return decimal.Zero, nil, domain.ErrEmptyCart
	}

	total := decimal.Zero
	lines := make([]CheckoutLine, 0, len(items))
	for _, it := range items {
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return decimal.Zero, nil, err
		}
		if p == nil {
			return decimal.Zero, nil, domain.ErrNotFound
		}
		lines = append(lines, CheckoutLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total, lines, nil
}

// sameLines compara dos juegos de líneas por producto, cantidad y precio
// unitario, sin importar el orden.
func sameLines(a, b []CheckoutLine) bool {
	if len(a) != len(b) {
		return false
	}
	byProduct := make(map[string]CheckoutLine, len(a))
	for _, l := range a {
		byProduct[l.ProductID] = l
	}
	for _, l := range b {
		prev, ok := byProduct[l.ProductID]
		if !ok || prev.Quantity != l.Quantity || !prev.UnitPrice.Equal(l.UnitPrice) {
			return false
		}
	}
	return true
}

// sweepLocked descarta checkouts iniciados cuyo callback nunca llegó.
// Requiere uc.mu tomado.
func (uc *PaymentUseCase) sweepLocked() {
	cutoff := time.Now().Add(-pendingTTL)
	for token, p := range uc.pending {
		if p.createdAt.Before(cutoff) {
			delete(uc.pending, token)
		}
	}
}
