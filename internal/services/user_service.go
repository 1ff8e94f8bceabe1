package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/constants"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrForemanNotFound = errors.New("foreman not found")
)

// UserService handles user management business logic.
type UserService struct {
	userRepo   repository.UserRepository
	objectRepo repository.ObjectRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, objectRepo repository.ObjectRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		objectRepo: objectRepo,
	}
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	Role           models.UserRole
	Phone          *string
	Specialization *string
	Grade          *string
}

// UpdateUserInput represents a partial update; nil fields stay unchanged.
type UpdateUserInput struct {
	Email          *string
	FirstName      *string
	LastName       *string
	Password       *string
	Role           *models.UserRole
	Phone          *string
	Specialization *string
	Grade          *string
	IsActive       *bool
}

// FindAll lists active users.
func (s *UserService) FindAll() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// FindOne returns an active user by ID.
func (s *UserService) FindOne(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindByRole lists active users with the given role.
func (s *UserService) FindByRole(role models.UserRole) ([]models.User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	users, err := s.userRepo.FindByRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	return users, nil
}

// Create adds a new user on behalf of an administrator.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := input.Role
	if role == "" {
		role = models.RoleWorker
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), constants.BcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:          email,
		PasswordHash:   string(hashedPassword),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           role,
		Phone:          input.Phone,
		Specialization: input.Specialization,
		Grade:          input.Grade,
		IsActive:       true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Update merges provided fields into an existing user.
func (s *UserService) Update(id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*input.Email))
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Specialization != nil {
		user.Specialization = input.Specialization
	}
	if input.Grade != nil {
		user.Grade = input.Grade
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), constants.BcryptCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Remove soft deletes a user.
func (s *UserService) Remove(id uuid.UUID) error {
	affected, err := s.userRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ForemanObjects lists the objects managed by a foreman.
func (s *UserService) ForemanObjects(foremanID uuid.UUID) ([]models.ConstructionObject, error) {
	foreman, err := s.userRepo.FindByID(foremanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForemanNotFound
		}
		return nil, fmt.Errorf("failed to find foreman: %w", err)
	}

	if foreman.Role != models.RoleForeman {
		return nil, ErrForemanNotFound
	}

	objects, err := s.objectRepo.FindByForeman(foremanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list foreman objects: %w", err)
	}
	return objects, nil
}
