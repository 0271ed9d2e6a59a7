package stats_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/tienda-movil-api/internal/application/stats"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

type fakeProductRepo struct{ count int64 }

func (r *fakeProductRepo) Create(*entity.Product) error           { return nil }
func (r *fakeProductRepo) GetByID(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error           { return nil }
func (r *fakeProductRepo) Delete(string) error                    { return nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Count() (int64, error)              { return r.count, nil }
func (r *fakeProductRepo) DecrementStock(string, int64) error { return nil }

type fakeUserRepo struct {
	count int64
	err   error
}

func (r *fakeUserRepo) Create(*entity.User) error                  { return nil }
func (r *fakeUserRepo) GetByID(string) (*entity.User, error)       { return nil, nil }
func (r *fakeUserRepo) GetByEmail(string) (*entity.User, error)    { return nil, nil }
func (r *fakeUserRepo) List(int, int) ([]*entity.User, error)      { return nil, nil }
func (r *fakeUserRepo) Count() (int64, error)                      { return r.count, r.err }

type fakeOrderRepo struct{ count int64 }

func (r *fakeOrderRepo) Create(*entity.Order) error                         { return nil }
func (r *fakeOrderRepo) CreateItem(*entity.OrderItem) error                 { return nil }
func (r *fakeOrderRepo) GetByID(string) (*entity.Order, error)              { return nil, nil }
func (r *fakeOrderRepo) GetItems(string) ([]*entity.OrderItem, error)       { return nil, nil }
func (r *fakeOrderRepo) ListByUser(string, int, int) ([]*entity.Order, error) {
	return nil, nil
}
func (r *fakeOrderRepo) ListAll(int, int) ([]*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) UpdateStatus(string, string) error         { return nil }
func (r *fakeOrderRepo) UpdatePaymentStatus(string, string) error  { return nil }
func (r *fakeOrderRepo) Count() (int64, error)                     { return r.count, nil }

type fakeRepairRepo struct {
	byStatus   map[string]int64
	lastStatus string
}

func (r *fakeRepairRepo) Create(*entity.RepairRequest) error            { return nil }
func (r *fakeRepairRepo) GetByID(string) (*entity.RepairRequest, error) { return nil, nil }
func (r *fakeRepairRepo) ListByUser(string, int, int) ([]*entity.RepairRequest, error) {
	return nil, nil
}
func (r *fakeRepairRepo) ListAll(string, int, int) ([]*entity.RepairRequest, error) {
	return nil, nil
}
func (r *fakeRepairRepo) UpdateStatus(string, string) error { return nil }
func (r *fakeRepairRepo) CountByStatus(status string) (int64, error) {
	r.lastStatus = status
	return r.byStatus[status], nil
}

func TestDashboard_AgregaContadores(t *testing.T) {
	repairs := &fakeRepairRepo{byStatus: map[string]int64{
		entity.RepairStatusPending:   4,
		entity.RepairStatusCompleted: 9,
	}}
	uc := stats.NewStatsUseCase(
		&fakeProductRepo{count: 12},
		&fakeUserRepo{count: 30},
		&fakeOrderRepo{count: 7},
		repairs,
	)

	out, err := uc.Dashboard()
	require.NoError(t, err)
	assert.EqualValues(t, 12, out.ProductCount)
	assert.EqualValues(t, 30, out.UserCount)
	assert.EqualValues(t, 7, out.OrderCount)

	// Solo cuentan las reparaciones pendientes, no las terminadas.
	assert.EqualValues(t, 4, out.PendingRepairCount)
	assert.Equal(t, entity.RepairStatusPending, repairs.lastStatus)
}

func TestDashboard_PropagaErrorDeRepositorio(t *testing.T) {
	boom := errors.New("conexión perdida")
	uc := stats.NewStatsUseCase(
		&fakeProductRepo{count: 1},
		&fakeUserRepo{err: boom},
		&fakeOrderRepo{},
		&fakeRepairRepo{byStatus: map[string]int64{}},
	)

	_, err := uc.Dashboard()
	assert.ErrorIs(t, err, boom)
}
