package entity

import "time"

// Review es la reseña de un usuario sobre un producto. Única por (user, product).
type Review struct {
	ID        string
	UserID    string
	UserName  string // denormalizado para listados
	ProductID string
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
}
