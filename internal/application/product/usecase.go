package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
	"github.com/jhoicas/tienda-movil-api/pkg/search"
)

// ProductUseCase catálogo: lectura pública, escritura de admin.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso de catálogo.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// List lista el catálogo con filtro opcional por categoría y búsqueda por
// término. El término se normaliza (minúsculas, sin acentos) antes de filtrar.
func (uc *ProductUseCase) List(category, term string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter := repository.ProductFilter{
		Category: strings.ToUpper(strings.TrimSpace(category)),
		Search:   search.Normalize(term),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	products, err := uc.productRepo.List(filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetByID devuelve un producto del catálogo.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Create crea un producto (admin).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	category := strings.ToUpper(strings.TrimSpace(in.Category))
	if category != entity.CategoryPhone && category != entity.CategoryAccessory {
		return nil, domain.ErrInvalidInput
	}
	condition := strings.ToUpper(strings.TrimSpace(in.Condition))
	if condition == "" {
		condition = entity.ConditionNew
	}
	if condition != entity.ConditionNew && condition != entity.ConditionUsed {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Description:   in.Description,
		Price:         in.Price,
		Stock:         in.Stock,
		Category:      category,
		Condition:     condition,
		SubCategory:   in.SubCategory,
		Storage:       in.Storage,
		RAM:           in.RAM,
		BatteryHealth: in.BatteryHealth,
		Images:        in.Images,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Update aplica un parche parcial (admin). Stock aquí es un overwrite
// absoluto; el decremento de la liquidación va por otra vía.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.Stock = *in.Stock
	}
	if in.Category != nil {
		category := strings.ToUpper(strings.TrimSpace(*in.Category))
		if category != entity.CategoryPhone && category != entity.CategoryAccessory {
			return nil, domain.ErrInvalidInput
		}
		p.Category = category
	}
	if in.Condition != nil {
		condition := strings.ToUpper(strings.TrimSpace(*in.Condition))
		if condition != entity.ConditionNew && condition != entity.ConditionUsed {
			return nil, domain.ErrInvalidInput
		}
		p.Condition = condition
	}
	if in.SubCategory != nil {
		p.SubCategory = *in.SubCategory
	}
	if in.Storage != nil {
		p.Storage = *in.Storage
	}
	if in.RAM != nil {
		p.RAM = *in.RAM
	}
	if in.BatteryHealth != nil {
		p.BatteryHealth = *in.BatteryHealth
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	p.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	resp := toProductResponse(p)
	return &resp, nil
}

// Delete elimina un producto del catálogo (admin).
func (uc *ProductUseCase) Delete(id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Stock:         p.Stock,
		Category:      p.Category,
		Condition:     p.Condition,
		SubCategory:   p.SubCategory,
		Storage:       p.Storage,
		RAM:           p.RAM,
		BatteryHealth: p.BatteryHealth,
		Images:        p.Images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
