package entity

import "time"

// Estados de una solicitud de reparación. Las transiciones son libres
// (cualquier estado es alcanzable desde cualquier otro, solo por admin).
const (
	RepairStatusPending    = "PENDING"
	RepairStatusInProgress = "IN_PROGRESS"
	RepairStatusCompleted  = "COMPLETED"
	RepairStatusCancelled  = "CANCELLED"
)

// ValidRepairStatus indica si s es uno de los cuatro estados conocidos.
func ValidRepairStatus(s string) bool {
	switch s {
	case RepairStatusPending, RepairStatusInProgress, RepairStatusCompleted, RepairStatusCancelled:
		return true
	}
	return false
}

// RepairRequest es una solicitud de reparación de equipo. Independiente del
// núcleo de liquidación; requiere sesión para crearse.
type RepairRequest struct {
	ID          string
	UserID      string
	Model       string
	Description string
	Contact     string
	Status      string // PENDING | IN_PROGRESS | COMPLETED | CANCELLED
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
