package dto

import "time"

// CreateRepairRequest entrada del formulario de reparación.
type CreateRepairRequest struct {
	Model   string `json:"model" validate:"required"`
	Issue   string `json:"issue" validate:"required"`
	Contact string `json:"contact" validate:"required"`
}

// RepairResponse salida de una solicitud de reparación.
type RepairResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Model       string    `json:"model"`
	Description string    `json:"description"`
	Contact     string    `json:"contact"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// RepairListResponse lista paginada de solicitudes.
type RepairListResponse struct {
	Items []RepairResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// UpdateRepairStatusRequest entrada para que el admin cambie el estado.
type UpdateRepairStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
