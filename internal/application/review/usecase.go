package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// ReviewUseCase reseñas de productos: una por (usuario, producto).
type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewUseCase construye el caso de uso de reseñas.
func NewReviewUseCase(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewUseCase {
	return &ReviewUseCase{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create registra una reseña. Un segundo intento del mismo usuario sobre el
// mismo producto devuelve domain.ErrConflict.
func (uc *ReviewUseCase) Create(userID, userName, productID string, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}

	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.reviewRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	r := &entity.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserName:  userName,
		ProductID: productID,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: time.Now(),
	}
	if err := uc.reviewRepo.Create(r); err != nil {
		return nil, err
	}
	resp := toReviewResponse(r)
	return &resp, nil
}

// ListByProduct lista las reseñas de un producto (público).
func (uc *ReviewUseCase) ListByProduct(productID string, page dto.PageRequest) (*dto.ReviewListResponse, error) {
	page.DefaultPage()
	reviews, err := uc.reviewRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, toReviewResponse(r))
	}
	return &dto.ReviewListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toReviewResponse(r *entity.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		UserName:  r.UserName,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}
