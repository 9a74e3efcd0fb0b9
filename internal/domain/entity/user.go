package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "ADMIN"
	RoleSeller      = "SELLER"
	RoleStorekeeper = "STOREKEEPER"
)

// User representa un operador del sistema (quien registra ventas y movimientos).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, SELLER, STOREKEEPER
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
