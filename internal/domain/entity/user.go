package entity

import "time"

// Roles válidos para User. El llamador anónimo no tiene rol.
const (
	RoleAdmin    = "admin"
	RoleEmpleado = "empleado"
	RoleCliente  = "cliente"
	RoleAnonimo  = ""
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, empleado, cliente
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
