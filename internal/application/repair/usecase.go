package repair

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
	"github.com/jhoicas/tienda-movil-api/pkg/ratelimit"
)

// RepairUseCase solicitudes de reparación. La creación está limitada por
// usuario mediante un Limiter inyectado (ventana deslizante).
type RepairUseCase struct {
	repairRepo repository.RepairRepository
	limiter    ratelimit.Limiter
}

// NewRepairUseCase construye el caso de uso de reparaciones.
func NewRepairUseCase(repairRepo repository.RepairRepository, limiter ratelimit.Limiter) *RepairUseCase {
	return &RepairUseCase{repairRepo: repairRepo, limiter: limiter}
}

// Create registra una solicitud de reparación en estado PENDING.
// Devuelve domain.ErrRateLimited si el usuario excedió su cuota.
func (uc *RepairUseCase) Create(userID string, in dto.CreateRepairRequest) (*dto.RepairResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	model := strings.TrimSpace(in.Model)
	issue := strings.TrimSpace(in.Issue)
	contact := strings.TrimSpace(in.Contact)
	if model == "" || issue == "" || contact == "" {
		return nil, domain.ErrInvalidInput
	}
	if !uc.limiter.Allow(userID) {
		return nil, domain.ErrRateLimited
	}

	now := time.Now()
	req := &entity.RepairRequest{
		ID:          uuid.New().String(),
		UserID:      userID,
		Model:       model,
		Description: issue,
		Contact:     contact,
		Status:      entity.RepairStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repairRepo.Create(req); err != nil {
		return nil, err
	}
	resp := toRepairResponse(req)
	return &resp, nil
}

// ListByUser lista las solicitudes del usuario autenticado.
func (uc *RepairUseCase) ListByUser(userID string, page dto.PageRequest) (*dto.RepairListResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	reqs, err := uc.repairRepo.ListByUser(userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(reqs, page), nil
}

// ListAll lista todas las solicitudes, con filtro opcional por estado (admin).
func (uc *RepairUseCase) ListAll(status string, page dto.PageRequest) (*dto.RepairListResponse, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !entity.ValidRepairStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	reqs, err := uc.repairRepo.ListAll(status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toListResponse(reqs, page), nil
}

// UpdateStatus cambia el estado de una solicitud (admin). Las transiciones
// son libres entre los cuatro estados conocidos.
func (uc *RepairUseCase) UpdateStatus(id string, in dto.UpdateRepairStatusRequest) error {
	status := strings.ToUpper(strings.TrimSpace(in.Status))
	if !entity.ValidRepairStatus(status) {
		return domain.ErrInvalidInput
	}
	req, err := uc.repairRepo.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrNotFound
	}
	return uc.repairRepo.UpdateStatus(id, status)
}

func toListResponse(reqs []*entity.RepairRequest, page dto.PageRequest) *dto.RepairListResponse {
	items := make([]dto.RepairResponse, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, toRepairResponse(r))
	}
	return &dto.RepairListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func toRepairResponse(r *entity.RepairRequest) dto.RepairResponse {
	return dto.RepairResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Model:       r.Model,
		Description: r.Description,
		Contact:     r.Contact,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}
