package dto

import (
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
)

// UserDTO represents a user in API responses. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID             uuid.UUID       `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	Phone          *string         `json:"phone,omitempty"`
	Specialization *string         `json:"specialization,omitempty"`
	Grade          *string         `json:"grade,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		Email:          user.Email,
		Role:           user.Role,
		Phone:          user.Phone,
		Specialization: user.Specialization,
		Grade:          user.Grade,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
