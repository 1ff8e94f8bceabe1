package services

import (
	"errors"
	"fmt"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCrewNotFound = errors.New("crew not found")

// CrewService handles crew business logic.
type CrewService struct {
	crewRepo repository.CrewRepository
	userRepo repository.UserRepository
}

// NewCrewService creates a new CrewService.
func NewCrewService(crewRepo repository.CrewRepository, userRepo repository.UserRepository) *CrewService {
	return &CrewService{
		crewRepo: crewRepo,
		userRepo: userRepo,
	}
}

// CreateCrewInput represents input for creating a crew.
type CreateCrewInput struct {
	Name        string
	Description *string
}

// UpdateCrewInput represents a partial update; nil fields stay unchanged.
type UpdateCrewInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// FindAll lists active crews.
func (s *CrewService) FindAll() ([]models.Crew, error) {
	crews, err := s.crewRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list crews: %w", err)
	}
	return crews, nil
}

// FindOne returns an active crew by ID.
func (s *CrewService) FindOne(id uuid.UUID) (*models.Crew, error) {
	crew, err := s.crewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCrewNotFound
		}
		return nil, fmt.Errorf("failed to find crew: %w", err)
	}
	return crew, nil
}

// Create persists a new crew.
func (s *CrewService) Create(input CreateCrewInput) (*models.Crew, error) {
	crew := &models.Crew{
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}

	if err := s.crewRepo.Create(crew); err != nil {
		return nil, fmt.Errorf("failed to create crew: %w", err)
	}

	return crew, nil
}

// Update merges provided fields into an existing crew.
func (s *CrewService) Update(id uuid.UUID, input UpdateCrewInput) (*models.Crew, error) {
	crew, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		crew.Name = *input.Name
	}
	if input.Description != nil {
		crew.Description = input.Description
	}
	if input.IsActive != nil {
		crew.IsActive = *input.IsActive
	}

	if err := s.crewRepo.Update(crew); err != nil {
		return nil, fmt.Errorf("failed to update crew: %w", err)
	}

	return crew, nil
}

// Remove soft deletes a crew.
func (s *CrewService) Remove(id uuid.UUID) error {
	affected, err := s.crewRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete crew: %w", err)
	}
	if affected == 0 {
		return ErrCrewNotFound
	}
	return nil
}

// AddMember adds a user to a crew.
func (s *CrewService) AddMember(crewID, userID uuid.UUID) (*models.Crew, error) {
	crew, err := s.FindOne(crewID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.crewRepo.AddMember(crew, user); err != nil {
		return nil, fmt.Errorf("failed to add crew member: %w", err)
	}

	return s.FindOne(crewID)
}

// RemoveMember removes a user from a crew.
func (s *CrewService) RemoveMember(crewID, userID uuid.UUID) (*models.Crew, error) {
	crew, err := s.FindOne(crewID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.crewRepo.RemoveMember(crew, user); err != nil {
		return nil, fmt.Errorf("failed to remove crew member: %w", err)
	}

	return s.FindOne(crewID)
}

// Members lists the members of a crew.
func (s *CrewService) Members(crewID uuid.UUID) ([]models.User, error) {
	crew, err := s.FindOne(crewID)
	if err != nil {
		return nil, err
	}
	return crew.Members, nil
}

// Objects lists the objects a crew is assigned to.
func (s *CrewService) Objects(crewID uuid.UUID) ([]models.ConstructionObject, error) {
	crew, err := s.FindOne(crewID)
	if err != nil {
		return nil, err
	}
	return crew.Objects, nil
}
