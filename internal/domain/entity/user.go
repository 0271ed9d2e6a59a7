package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User representa un usuario de la tienda. Tiene a lo sumo un Cart.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // USER | ADMIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
