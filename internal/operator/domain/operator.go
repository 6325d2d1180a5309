package domain

import (
	"time"
)

type Role string

const (
	RoleCashier Role = "cashier"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleCashier || r == RoleManager
}

// Operator is a till account. Authentication is optional for the POS.
type Operator struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Operator  Operator  `json:"operator"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
