package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDepartment Role = "department"
)

// Actor is the authenticated identity attached to a request. It is
// reconstructed from verified token claims, never loaded per request.
type Actor struct {
	ID         string `json:"id"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" validate:"required"`
	Email      string             `json:"email" bson:"email" validate:"required,email"`
	Password   string             `json:"-" bson:"password"`
	Role       Role               `json:"role" bson:"role" validate:"required,oneof=admin department"`
	Department string             `json:"department" bson:"department"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

type CreateUserInput struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       Role   `json:"role" validate:"required,oneof=admin department"`
	Department string `json:"department"`
}

type UpdateUserInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Department *string `json:"department"`
	Role       *Role   `json:"role" validate:"omitempty,oneof=admin department"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	// CurrentPassword is required for self-service changes and ignored
	// on admin resets; the service enforces it.
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
