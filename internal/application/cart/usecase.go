package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// CartUseCase operaciones del carrito: agregar, cambiar cantidad, quitar,
// vaciar y consultar. El carrito se crea perezosamente en el primer add.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo}
}

// AddItem agrega un producto al carrito del usuario. Si la línea ya existe se
// suma la cantidad; si el carrito no existe se crea.
func (uc *CartUseCase) AddItem(userID string, in dto.AddCartItemRequest) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if in.ProductID == "" {
		return domain.ErrInvalidInput
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	cart, err := uc.cartRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		now := time.Now()
		cart = &entity.Cart{ID: uuid.New().String(), UserID: userID, CreatedAt: now, UpdatedAt: now}
		if err := uc.cartRepo.Create(cart); err != nil {
			return err
		}
	}

	existing, err := uc.cartRepo.GetItem(cart.ID, in.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		return uc.cartRepo.UpdateItemQuantity(existing.ID, existing.Quantity+qty)
	}
	return uc.cartRepo.CreateItem(&entity.CartItem{
		ID:        uuid.New().String(),
		CartID:    cart.ID,
		ProductID: in.ProductID,
		Quantity:  qty,
		CreatedAt: time.Now(),
	})
}

// UpdateItemQuantity fija la cantidad de una línea del carrito del usuario.
// Una cantidad <= 0 elimina la línea: nunca se persiste una línea en cero.
func (uc *CartUseCase) UpdateItemQuantity(userID, itemID string, quantity int64) error {
	item, err := uc.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return uc.cartRepo.DeleteItem(item.ID)
	}
	return uc.cartRepo.UpdateItemQuantity(item.ID, quantity)
}

// RemoveItem elimina una línea del carrito del usuario.
func (uc *CartUseCase) RemoveItem(userID, itemID string) error {
	item, err := uc.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return uc.cartRepo.DeleteItem(item.ID)
}

// Clear vacía el carrito del usuario (la fila del carrito persiste).
func (uc *CartUseCase) Clear(userID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	cart, err := uc.cartRepo.GetByUserID(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return uc.cartRepo.DeleteItems(cart.ID)
}

// Get devuelve el carrito con precios vigentes del catálogo.
func (uc *CartUseCase) Get(userID string) (*dto.CartResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	resp := &dto.CartResponse{Items: []dto.CartItemResponse{}, Total: decimal.Zero}

	cart, err := uc.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return resp, nil
	}
	items, err := uc.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			// Producto eliminado del catálogo con la línea aún en el carrito:
			// la línea se omite del render; la liquidación la rechazaría.
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(it.Quantity))
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    subtotal,
		})
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp, nil
}

// Count devuelve la suma de unidades del carrito (badge de la tienda).
func (uc *CartUseCase) Count(userID string) (int64, error) {
	if userID == "" {
		return 0, nil
	}
	return uc.cartRepo.CountUnits(userID)
}

// ownedItem resuelve una línea verificando que pertenezca al carrito del usuario.
func (uc *CartUseCase) ownedItem(userID, itemID string) (*entity.CartItem, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return nil, domain.ErrNotFound
}
