package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-movil-api/internal/domain/entity"
	"github.com/jhoicas/tienda-movil-api/internal/domain/repository"
)

var _ repository.RepairRepository = (*RepairRepo)(nil)

// RepairRepo implementación del puerto RepairRepository sobre PostgreSQL.
type RepairRepo struct {
	q Querier
}

// NewRepairRepository construye el adaptador de persistencia para reparaciones.
func NewRepairRepository(q Querier) *RepairRepo {
	return &RepairRepo{q: q}
}

const repairColumns = `id, user_id, model, description, contact, status, created_at, updated_at`

// Create persiste una solicitud de reparación.
func (r *RepairRepo) Create(req *entity.RepairRequest) error {
	query := `
		INSERT INTO repair_requests (` + repairColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.UserID, req.Model, req.Description, req.Contact, req.Status, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert repair request: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID.
func (r *RepairRepo) GetByID(id string) (*entity.RepairRequest, error) {
	query := `SELECT ` + repairColumns + ` FROM repair_requests WHERE id = $1`
	var req entity.RepairRequest
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&req.ID, &req.UserID, &req.Model, &req.Description, &req.Contact, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair request: %w", err)
	}
	return &req, nil
}

// ListByUser lista las solicitudes de un usuario, más recientes primero.
func (r *RepairRepo) ListByUser(userID string, limit, offset int) ([]*entity.RepairRequest, error) {
	query := `SELECT ` + repairColumns + ` FROM repair_requests WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, userID, limit, offset)
}

// ListAll lista todas las solicitudes con filtro opcional por estado (admin).
func (r *RepairRepo) ListAll(status string, limit, offset int) ([]*entity.RepairRequest, error) {
	if status == "" {
		query := `SELECT ` + repairColumns + ` FROM repair_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		return r.list(query, limit, offset)
	}
	query := `SELECT ` + repairColumns + ` FROM repair_requests WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

func (r *RepairRepo) list(query string, args ...any) ([]*entity.RepairRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list repair requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.RepairRequest
	for rows.Next() {
		var req entity.RepairRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Model, &req.Description, &req.Contact,
			&req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan repair request: %w", err)
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de una solicitud.
func (r *RepairRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE repair_requests SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update repair status: %w", err)
	}
	return nil
}

// CountByStatus cuenta solicitudes por estado; vacío cuenta todas.
func (r *RepairRepo) CountByStatus(status string) (int64, error) {
	var n int64
	var err error
	if status == "" {
		err = r.q.QueryRow(context.Background(), `SELECT count(*) FROM repair_requests`).Scan(&n)
	} else {
		err = r.q.QueryRow(context.Background(), `SELECT count(*) FROM repair_requests WHERE status = $1`, status).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count repair requests: %w", err)
	}
	return n, nil
}
