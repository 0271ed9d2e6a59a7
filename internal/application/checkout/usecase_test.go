package checkout_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-movil-api/internal/application/checkout"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional (snapshot + restore en rollback).
// El txRunner serializa transacciones con un mutex, igual que lo hace el
// SELECT FOR UPDATE sobre las filas del carrito en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	carts      map[string]*entity.Cart     // por userID
	items      map[string]*entity.CartItem // por itemID
	products   map[string]*entity.Product
	orders     map[string]*entity.Order
	orderItems map[string]*entity.OrderItem
}

func newMemStore() *memStore {
	return &memStore{
		carts:      make(map[string]*entity.Cart),
		items:      make(map[string]*entity.CartItem),
		products:   make(map[string]*entity.Product),
		orders:     make(map[string]*entity.Order),
		orderItems: make(map[string]*entity.OrderItem),
	}
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := newMemStore()
	for k, v := range s.carts {
		c := *v
		cp.carts[k] = &c
	}
	for k, v := range s.items {
		i := *v
		cp.items[k] = &i
	}
	for k, v := range s.products {
		p := *v
		cp.products[k] = &p
	}
	for k, v := range s.orders {
		o := *v
		cp.orders[k] = &o
	}
	for k, v := range s.orderItems {
		oi := *v
		cp.orderItems[k] = &oi
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = from.carts
	s.items = from.items
	s.products = from.products
	s.orders = from.orders
	s.orderItems = from.orderItems
}

// fakeCartRepo implementa repository.CartRepository sobre memStore.
// Cada método toma el lock del store para que las lecturas fuera de la
// transacción no compitan con las escrituras dentro de ella.
type fakeCartRepo struct{ s *memStore }

func (r *fakeCartRepo) GetByUserID(userID string) (*entity.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.carts[userID]; ok {
		return c, nil
	}
	return nil, nil
}

func (r *fakeCartRepo) Create(cart *entity.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.carts[cart.UserID] = cart
	return nil
}

func (r *fakeCartRepo) GetItem(cartID, productID string) (*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.items {
		if it.CartID == cartID && it.ProductID == productID {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeCartRepo) CreateItem(item *entity.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = item
	return nil
}

func (r *fakeCartRepo) UpdateItemQuantity(itemID string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[itemID]; ok {
		it.Quantity = quantity
	}
	return nil
}

func (r *fakeCartRepo) DeleteItem(itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, itemID)
	return nil
}

func (r *fakeCartRepo) ListItems(cartID string) ([]*entity.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CartItem
	for _, it := range r.s.items {
		if it.CartID == cartID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeCartRepo) DeleteItems(cartID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.items {
		if it.CartID == cartID {
			delete(r.s.items, id)
		}
	}
	return nil
}

func (r *fakeCartRepo) CountUnits(userID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cart, ok := r.s.carts[userID]
	if !ok {
		return 0, nil
	}
	var n int64
	for _, it := range r.s.items {
		if it.CartID == cart.ID {
			n += it.Quantity
		}
	}
	return n, nil
}

func (r *fakeCartRepo) LinesForUpdate(cartID string) ([]entity.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.CartLine
	for _, it := range r.s.items {
		if it.CartID != cartID {
			continue
		}
		p := r.s.products[it.ProductID]
		out = append(out, entity.CartLine{
			ItemID:      it.ID,
			ProductID:   it.ProductID,
			ProductName: p.Name,
			Quantity:    it.Quantity,
			UnitPrice:   p.Price,
			StockOnHand: p.Stock,
		})
	}
	return out, nil
}

// fakeProductRepo implementa repository.ProductRepository sobre memStore.
type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return p, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.products)), nil
}

func (r *fakeProductRepo) DecrementStock(productID string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok || p.Stock < quantity {
		return domain.ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}

// fakeOrderRepo implementa repository.OrderRepository sobre memStore.
type fakeOrderRepo struct{ s *memStore }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) CreateItem(it *entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orderItems[it.ID] = it
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		return o, nil
	}
	return nil, nil
}

func (r *fakeOrderRepo) GetItems(orderID string) ([]*entity.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.OrderItem
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListByUser(string, int, int) ([]*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) ListAll(int, int) ([]*entity.Order, error)            { return nil, nil }

func (r *fakeOrderRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(id, ps string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		o.PaymentStatus = ps
	}
	return nil
}

func (r *fakeOrderRepo) Count() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.orders)), nil
}

// fakeTxRunner serializa transacciones y restaura el snapshot si fn falla.
type fakeTxRunner struct {
	s    *memStore
	txMu sync.Mutex
}

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	t.txMu.Lock()
	defer t.txMu.Unlock()
	before := t.s.snapshot()
	err := fn(&fakeCartRepo{t.s}, &fakeProductRepo{t.s}, &fakeOrderRepo{t.s})
	if err != nil {
		t.s.restore(before)
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID = "user-1"
	testEmail  = "cliente@example.com"
)

func validCheckout() dto.CheckoutRequest {
	return dto.CheckoutRequest{
		ShippingAddress: "Calle Falsa 123",
		Phone:           "3001234567",
		Notes:           "entregar en portería",
	}
}

// seedStore: carrito con Funda (400 × 2) y Cargador (350 × 1), stocks 10 y 5.
func seedStore() *memStore {
	s := newMemStore()
	s.products["p-case"] = &entity.Product{
		ID: "p-case", Name: "Funda", Price: decimal.NewFromInt(400),
		Stock: 10, Category: entity.CategoryAccessory,
	}
	s.products["p-charger"] = &entity.Product{
		ID: "p-charger", Name: "Cargador", Price: decimal.NewFromInt(350),
		Stock: 5, Category: entity.CategoryAccessory,
	}
	s.carts[testUserID] = &entity.Cart{ID: "cart-1", UserID: testUserID}
	s.items["ci-1"] = &entity.CartItem{ID: "ci-1", CartID: "cart-1", ProductID: "p-case", Quantity: 2}
	s.items["ci-2"] = &entity.CartItem{ID: "ci-2", CartID: "cart-1", ProductID: "p-charger", Quantity: 1}
	return s
}

func newUC(s *memStore) *checkout.SettleUseCase {
	return checkout.NewSettleUseCase(&fakeTxRunner{s: s}, &fakeCartRepo{s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Liquidación feliz: total 400×2 + 350×1 = 1150, precios congelados, stock
// descontado exacto y carrito vacío.
func TestPlaceOrder_LiquidaCarrito(t *testing.T) {
	s := seedStore()
	uc := newUC(s)

	out, err := uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(1150)), "total = %s", out.TotalAmount)
	assert.True(t, strings.HasPrefix(out.OrderNumber, "ORD-"))
	assert.Equal(t, entity.OrderStatusPending, out.Status)
	assert.Equal(t, entity.PaymentMethodCashOnDelivery, out.PaymentMethod)
	assert.Equal(t, entity.PaymentStatusPending, out.PaymentStatus)

	// Las líneas del pedido reflejan exactamente el carrito previo.
	require.Len(t, out.Items, 2)
	byProduct := map[string]dto.OrderItemResponse{}
	for _, it := range out.Items {
		byProduct[it.ProductID] = it
	}
	assert.EqualValues(t, 2, byProduct["p-case"].Quantity)
	assert.True(t, byProduct["p-case"].UnitPrice.Equal(decimal.NewFromInt(400)))
	assert.EqualValues(t, 1, byProduct["p-charger"].Quantity)
	assert.True(t, byProduct["p-charger"].UnitPrice.Equal(decimal.NewFromInt(350)))

	// stock_after == stock_before − cantidad liquidada (igualdad exacta).
	assert.EqualValues(t, 8, s.products["p-case"].Stock)
	assert.EqualValues(t, 4, s.products["p-charger"].Stock)

	// Carrito vacío, fila del carrito viva.
	assert.Empty(t, s.items)
	assert.NotNil(t, s.carts[testUserID])
	assert.Len(t, s.orders, 1)
}

// El total queda congelado: un cambio posterior de precio del catálogo no lo toca.
func TestPlaceOrder_TotalInmutableAnteCambioDePrecio(t *testing.T) {
	s := seedStore()
	uc := newUC(s)

	out, err := uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
	require.NoError(t, err)

	// El admin sube el precio después de la compra.
	s.products["p-case"].Price = decimal.NewFromInt(9999)

	stored := s.orders[out.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(1150)))
	for _, it := range s.orderItems {
		if it.ProductID == "p-case" {
			assert.True(t, it.UnitPrice.Equal(decimal.NewFromInt(400)), "precio congelado de la línea")
		}
	}
}

// Carrito vacío: falla con ErrEmptyCart y no deja efectos.
func TestPlaceOrder_CarritoVacio(t *testing.T) {
	s := seedStore()
	// Vaciar las líneas pero conservar el carrito.
	s.items = map[string]*entity.CartItem{}
	uc := newUC(s)

	_, err := uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, s.orders)
	assert.EqualValues(t, 10, s.products["p-case"].Stock)
}

// Usuario sin carrito creado: también ErrEmptyCart, sin escrituras.
func TestPlaceOrder_SinCarrito(t *testing.T) {
	s := seedStore()
	uc := newUC(s)

	_, err := uc.PlaceOrder(context.Background(), "otro-usuario", "x@example.com", validCheckout())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, s.orders)
}

// Sin sesión: ErrUnauthorized y cero escrituras (ni pedido ni stock).
func TestPlaceOrder_SinSesion(t *testing.T) {
	s := seedStore()
	uc := newUC(s)

	_, err := uc.PlaceOrder(context.Background(), "", testEmail, validCheckout())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, s.orders)
	assert.EqualValues(t, 10, s.products["p-case"].Stock)
	assert.Len(t, s.items, 2)
}

// Dirección o teléfono ausentes: ErrInvalidInput, sin efectos.
func TestPlaceOrder_CamposFaltantes(t *testing.T) {
	s := seedStore()
	uc := newUC(s)

	in := validCheckout()
	in.Phone = "   "
	_, err := uc.PlaceOrder(context.Background(), testUserID, testEmail, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validCheckout()
	in.ShippingAddress = ""
	_, err = uc.PlaceOrder(context.Background(), testUserID, testEmail, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, s.orders)
	assert.Len(t, s.items, 2)
}

// Stock insuficiente: la liquidación completa se rechaza y se revierte; no
// queda pedido a medias, el stock y el carrito no cambian.
func TestPlaceOrder_StockInsuficiente(t *testing.T) {
	s := seedStore()
	s.items["ci-1"].Quantity = 11 // solo hay 10 fundas
	uc := newUC(s)

	_, err := uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, s.orders, "el rollback no debe dejar cabecera de pedido")
	assert.Empty(t, s.orderItems)
	assert.EqualValues(t, 10, s.products["p-case"].Stock)
	assert.EqualValues(t, 5, s.products["p-charger"].Stock)
	assert.Len(t, s.items, 2, "el carrito debe quedar intacto")
}

// La verificación de existencias cubre todas las líneas: con la primera
// satisfacible y la segunda corta, igual se rechaza todo sin escrituras.
func TestPlaceOrder_StockInsuficienteEnSegundaLinea(t *testing.T) {
	s := seedStore()
	s.items["ci-2"].Quantity = 6 // solo hay 5 cargadores
	uc := newUC(s)

	_, err := uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Empty(t, s.orders)
	assert.EqualValues(t, 10, s.products["p-case"].Stock)
	assert.EqualValues(t, 5, s.products["p-charger"].Stock)
	assert.Len(t, s.items, 2)
}

// Doble submit concurrente del mismo carrito: exactamente un pedido; el
// perdedor observa el carrito vacío y recibe ErrEmptyCart.
func TestPlaceOrder_DobleLiquidacionConcurrente(t *testing.T) {
	s := seedStore()
	uc := newUC(s)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
		}(i)
	}
	wg.Wait()

	var okCount, emptyCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case err == domain.ErrEmptyCart:
			emptyCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "debe ganar exactamente una liquidación")
	assert.Equal(t, 1, emptyCount, "la perdedora debe ver el carrito vacío")

	assert.Len(t, s.orders, 1)
	// El stock se descontó una sola vez.
	assert.EqualValues(t, 8, s.products["p-case"].Stock)
	assert.EqualValues(t, 4, s.products["p-charger"].Stock)
}

// Liquidaciones concurrentes de usuarios distintos sobre productos distintos:
// ambas ganan y cada stock refleja su propio decremento exacto.
func TestPlaceOrder_ConcurrentesProductosDistintos(t *testing.T) {
	s := seedStore()
	s.carts["user-2"] = &entity.Cart{ID: "cart-2", UserID: "user-2"}
	s.items["ci-3"] = &entity.CartItem{ID: "ci-3", CartID: "cart-2", ProductID: "p-charger", Quantity: 2}
	// El carrito 1 solo lleva fundas para que no compitan por el mismo producto.
	delete(s.items, "ci-2")
	uc := newUC(s)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.PlaceOrder(context.Background(), "user-2", "otro@example.com", validCheckout())
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Len(t, s.orders, 2)
	assert.EqualValues(t, 8, s.products["p-case"].Stock)
	assert.EqualValues(t, 3, s.products["p-charger"].Stock)
}

// La variante de pago con tarjeta nace con método CARD y pago PAID.
func TestSettlePaid_MarcaPagoConfirmado(t *testing.T) {
	s := seedStore()
	uc := newUC(s)

	out, err := uc.SettlePaid(context.Background(), testUserID, testEmail, validCheckout())
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodCard, out.PaymentMethod)
	assert.Equal(t, entity.PaymentStatusPaid, out.PaymentStatus)
	assert.Equal(t, entity.OrderStatusPending, out.Status)
}

// Números de pedido: prefijo legible y sin colisiones en una ráfaga.
func TestPlaceOrder_NumerosUnicos(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := seedStore()
		uc := newUC(s)
		out, err := uc.PlaceOrder(context.Background(), testUserID, testEmail, validCheckout())
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(out.OrderNumber, "ORD-"))
		require.False(t, seen[out.OrderNumber], "número repetido: %s", out.OrderNumber)
		seen[out.OrderNumber] = true
	}
}
