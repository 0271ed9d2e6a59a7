package review_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/application/review"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

type fakeReviewRepo struct {
	reviews map[string]*entity.Review
}

func (r *fakeReviewRepo) Create(rev *entity.Review) error {
	r.reviews[rev.ID] = rev
	return nil
}

func (r *fakeReviewRepo) GetByUserAndProduct(userID, productID string) (*entity.Review, error) {
	for _, rev := range r.reviews {
		if rev.UserID == userID && rev.ProductID == productID {
			return rev, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, rev := range r.reviews {
		if rev.ProductID == productID {
			out = append(out, rev)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error             { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return r.products[id], nil }
func (r *fakeProductRepo) Update(p *entity.Product) error             { return nil }
func (r *fakeProductRepo) Delete(id string) error                     { return nil }
func (r *fakeProductRepo) List(f repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Count() (int64, error)                                 { return 0, nil }
func (r *fakeProductRepo) DecrementStock(productID string, quantity int64) error { return nil }

func newUseCase() *review.ReviewUseCase {
	return review.NewReviewUseCase(
		&fakeReviewRepo{reviews: map[string]*entity.Review{}},
		&fakeProductRepo{products: map[string]*entity.Product{
			"prod-1": {ID: "prod-1", Name: "Funda", Price: decimal.NewFromInt(400)},
		}},
	)
}

func TestCreate_ResenaValida(t *testing.T) {
	uc := newUseCase()

	resp, err := uc.Create("user-1", "Ana", "prod-1", dto.CreateReviewRequest{Rating: 5, Comment: "  Excelente  "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.UserName)
	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, "Excelente", resp.Comment)
}

func TestCreate_DuplicadaPorUsuarioYProducto(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Create("user-1", "Ana", "prod-1", dto.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)

	_, err = uc.Create("user-1", "Ana", "prod-1", dto.CreateReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Otro usuario sí puede reseñar el mismo producto.
	_, err = uc.Create("user-2", "Luis", "prod-1", dto.CreateReviewRequest{Rating: 4})
	assert.NoError(t, err)
}

func TestCreate_RatingFueraDeRango(t *testing.T) {
	uc := newUseCase()

	for _, rating := range []int{0, 6, -1} {
		_, err := uc.Create("user-1", "Ana", "prod-1", dto.CreateReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestCreate_ProductoInexistente(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Create("user-1", "Ana", "no-existe", dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SinSesion(t *testing.T) {
	uc := newUseCase()

	_, err := uc.Create("", "", "prod-1", dto.CreateReviewRequest{Rating: 5})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListByProduct(t *testing.T) {
	uc := newUseCase()
	_, err := uc.Create("user-1", "Ana", "prod-1", dto.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = uc.Create("user-2", "Luis", "prod-1", dto.CreateReviewRequest{Rating: 3})
	require.NoError(t, err)

	resp, err := uc.ListByProduct("prod-1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
}
