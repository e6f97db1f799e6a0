package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSupervisor Role = "SUPERVISOR"
	RoleNormal     Role = "NORMAL"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=SUPERVISOR NORMAL"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateClientReq represents a supervisor editing a client profile
// swagger:model UpdateClientReq
type UpdateClientReq struct {
	FullName  string  `json:"full_name" validate:"required"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}
