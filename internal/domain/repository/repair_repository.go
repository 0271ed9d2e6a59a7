package repository

import "github.com/jhoicas/tienda-movil-api/internal/domain/entity"

// RepairRepository define el puerto de persistencia para RepairRequest (DIP).
type RepairRepository interface {
	Create(req *entity.RepairRequest) error
	GetByID(id string) (*entity.RepairRequest, error)
	ListByUser(userID string, limit, offset int) ([]*entity.RepairRequest, error)
	// ListAll lista todas las solicitudes; status vacío = sin filtro.
	ListAll(status string, limit, offset int) ([]*entity.RepairRequest, error)
	UpdateStatus(id, status string) error
	CountByStatus(status string) (int64, error)
}
