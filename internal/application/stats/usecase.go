package stats

import (
	"github.com/jhoicas/tienda-movil-api/internal/application/dto"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

// StatsUseCase contadores del panel de administración.
type StatsUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
	repairRepo  repository.RepairRepository
}

// NewStatsUseCase construye el caso de uso de estadísticas.
func NewStatsUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	repairRepo repository.RepairRepository,
) *StatsUseCase {
	return &StatsUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		repairRepo:  repairRepo,
	}
}

// Dashboard devuelve los contadores del panel.
func (uc *StatsUseCase) Dashboard() (*dto.DashboardStatsResponse, error) {
	products, err := uc.productRepo.Count()
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.Count()
	if err != nil {
		return nil, err
	}
	orders, err := uc.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	pendingRepairs, err := uc.repairRepo.CountByStatus(entity.RepairStatusPending)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStatsResponse{
		ProductCount:       products,
		UserCount:          users,
		OrderCount:         orders,
		PendingRepairCount: pendingRepairs,
	}, nil
}
