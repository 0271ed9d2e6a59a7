package repair_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/application/repair"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
)

type fakeRepairRepo struct {
	reqs map[string]*entity.RepairRequest
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{reqs: map[string]*entity.RepairRequest{}}
}

func (r *fakeRepairRepo) Create(req *entity.RepairRequest) error {
	r.reqs[req.ID] = req
	return nil
}

func (r *fakeRepairRepo) GetByID(id string) (*entity.RepairRequest, error) { return r.reqs[id], nil }

func (r *fakeRepairRepo) ListByUser(userID string, limit, offset int) ([]*entity.RepairRequest, error) {
	var out []*entity.RepairRequest
	for _, req := range r.reqs {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRepairRepo) ListAll(status string, limit, offset int) ([]*entity.RepairRequest, error) {
	var out []*entity.RepairRequest
	for _, req := range r.reqs {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRepairRepo) UpdateStatus(id, status string) error {
	if req, ok := r.reqs[id]; ok {
		req.Status = status
	}
	return nil
}

func (r *fakeRepairRepo) CountByStatus(status string) (int64, error) {
	var n int64
	for _, req := range r.reqs {
		if status == "" || req.Status == status {
			n++
		}
	}
	return n, nil
}

// allowN permite las primeras n llamadas por clave.
type allowN struct {
	n     int
	calls map[string]int
}

func (l *allowN) Allow(key string) bool {
	if l.calls == nil {
		l.calls = map[string]int{}
	}
	l.calls[key]++
	return l.calls[key] <= l.n
}

func validRepair() dto.CreateRepairRequest {
	return dto.CreateRepairRequest{
		Model:   "iPhone 12",
		Issue:   "Pantalla rota",
		Contact: "555-0101",
	}
}

func TestCreate_SolicitudValida(t *testing.T) {
	repo := newFakeRepairRepo()
	uc := repair.NewRepairUseCase(repo, &allowN{n: 3})

	resp, err := uc.Create("user-1", validRepair())
	require.NoError(t, err)
	assert.Equal(t, entity.RepairStatusPending, resp.Status)
	assert.NotNil(t, repo.reqs[resp.ID])
}

func TestCreate_SinSesion(t *testing.T) {
	uc := repair.NewRepairUseCase(newFakeRepairRepo(), &allowN{n: 3})

	_, err := uc.Create("", validRepair())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreate_ExcedeCuota(t *testing.T) {
	repo := newFakeRepairRepo()
	uc := repair.NewRepairUseCase(repo, &allowN{n: 3})

	for i := 0; i < 3; i++ {
		_, err := uc.Create("user-1", validRepair())
		require.NoError(t, err)
	}
	_, err := uc.Create("user-1", validRepair())
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	// La cuota es por usuario: otro usuario no está afectado.
	_, err = uc.Create("user-2", validRepair())
	assert.NoError(t, err)
}

func TestCreate_CamposFaltantes(t *testing.T) {
	uc := repair.NewRepairUseCase(newFakeRepairRepo(), &allowN{n: 3})

	sinModelo := validRepair()
	sinModelo.Model = " "
	sinIssue := validRepair()
	sinIssue.Issue = ""
	sinContacto := validRepair()
	sinContacto.Contact = ""

	for _, in := range []dto.CreateRepairRequest{sinModelo, sinIssue, sinContacto} {
		_, err := uc.Create("user-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestListAll_FiltraPorEstado(t *testing.T) {
	repo := newFakeRepairRepo()
	uc := repair.NewRepairUseCase(repo, &allowN{n: 10})

	r1, err := uc.Create("user-1", validRepair())
	require.NoError(t, err)
	_, err = uc.Create("user-2", validRepair())
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(r1.ID, dto.UpdateRepairStatusRequest{Status: "IN_PROGRESS"}))

	resp, err := uc.ListAll("in_progress", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, r1.ID, resp.Items[0].ID)

	_, err = uc.ListAll("ROTO", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	repo := newFakeRepairRepo()
	uc := repair.NewRepairUseCase(repo, &allowN{n: 3})
	r1, err := uc.Create("user-1", validRepair())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.UpdateStatus(r1.ID, dto.UpdateRepairStatusRequest{Status: "LISTO"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.UpdateStatus("no-existe", dto.UpdateRepairStatusRequest{Status: "COMPLETED"}), domain.ErrNotFound)
}
