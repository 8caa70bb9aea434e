package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,bcryptlen"`
	Role     string `validate:"required,role"`
}

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	Token     string `json:"-"`
	ExpiresIn int64  `json:"expires_in"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
