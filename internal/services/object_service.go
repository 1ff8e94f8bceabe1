package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidForeman = errors.New("responsible foreman not found or not a foreman")
)

// ObjectService handles construction object business logic.
type ObjectService struct {
	objectRepo repository.ObjectRepository
	userRepo   repository.UserRepository
	crewRepo   repository.CrewRepository
}

// NewObjectService creates a new ObjectService.
func NewObjectService(objectRepo repository.ObjectRepository, userRepo repository.UserRepository, crewRepo repository.CrewRepository) *ObjectService {
	return &ObjectService{
		objectRepo: objectRepo,
		userRepo:   userRepo,
		crewRepo:   crewRepo,
	}
}

// CreateObjectInput represents input for creating an object.
type CreateObjectInput struct {
	Name                 string
	Description          *string
	Address              string
	Client               string
	Budget               float64
	StartDate            *time.Time
	EndDate              *time.Time
	ResponsibleForemanID uuid.UUID
}

// UpdateObjectInput represents a partial update; nil fields stay unchanged.
type UpdateObjectInput struct {
	Name                 *string
	Description          *string
	Address              *string
	Client               *string
	Budget               *float64
	StartDate            *time.Time
	EndDate              *time.Time
	IsActive             *bool
	ResponsibleForemanID *uuid.UUID
}

// ObjectProgress summarizes task completion for an object.
type ObjectProgress struct {
	Progress       int `json:"progress"`
	CompletedTasks int `json:"completedTasks"`
	TotalTasks     int `json:"totalTasks"`
}

// FindAll lists active objects, newest first.
func (s *ObjectService) FindAll() ([]models.ConstructionObject, error) {
	objects, err := s.objectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	return objects, nil
}

// FindOne returns an active object by ID.
func (s *ObjectService) FindOne(id uuid.UUID) (*models.ConstructionObject, error) {
	object, err := s.objectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to find object: %w", err)
	}
	return object, nil
}

// FindByForeman lists active objects managed by a foreman.
func (s *ObjectService) FindByForeman(foremanID uuid.UUID) ([]models.ConstructionObject, error) {
	objects, err := s.objectRepo.FindByForeman(foremanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects by foreman: %w", err)
	}
	return objects, nil
}

// Create validates the responsible foreman and persists a new object.
func (s *ObjectService) Create(input CreateObjectInput) (*models.ConstructionObject, error) {
	if err := s.ensureForeman(input.ResponsibleForemanID); err != nil {
		return nil, err
	}

	object := &models.ConstructionObject{
		Name:                 input.Name,
		Description:          input.Description,
		Address:              input.Address,
		Client:               input.Client,
		Budget:               input.Budget,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		ResponsibleForemanID: input.ResponsibleForemanID,
		IsActive:             true,
	}

	if err := s.objectRepo.Create(object); err != nil {
		return nil, fmt.Errorf("failed to create object: %w", err)
	}

	return s.FindOne(object.ID)
}

// Update merges provided fields into an existing object, re-validating the
// foreman when it changes.
func (s *ObjectService) Update(id uuid.UUID, input UpdateObjectInput) (*models.ConstructionObject, error) {
	object, err := s.objectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to find object: %w", err)
	}

	if input.ResponsibleForemanID != nil && *input.ResponsibleForemanID != object.ResponsibleForemanID {
		if err := s.ensureForeman(*input.ResponsibleForemanID); err != nil {
			return nil, err
		}
		object.ResponsibleForemanID = *input.ResponsibleForemanID
	}

	if input.Name != nil {
		object.Name = *input.Name
	}
	if input.Description != nil {
		object.Description = input.Description
	}
	if input.Address != nil {
		object.Address = *input.Address
	}
	if input.Client != nil {
		object.Client = *input.Client
	}
	if input.Budget != nil {
		object.Budget = *input.Budget
	}
	if input.StartDate != nil {
		object.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		object.EndDate = input.EndDate
	}
	if input.IsActive != nil {
		object.IsActive = *input.IsActive
	}

	// Clear the preloaded association so Save does not resurrect the old
	// foreman row alongside the new foreign key.
	object.ResponsibleForeman = models.User{}

	if err := s.objectRepo.Update(object); err != nil {
		return nil, fmt.Errorf("failed to update object: %w", err)
	}

	// Reload without the active-only filter so a deactivating update still
	// returns the saved object instead of a not-found.
	updated, err := s.objectRepo.FindAnyByID(object.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload object: %w", err)
	}
	return updated, nil
}

// Remove soft deletes an object.
func (s *ObjectService) Remove(id uuid.UUID) error {
	affected, err := s.objectRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	if affected == 0 {
		return ErrObjectNotFound
	}
	return nil
}

// Tasks lists the active tasks of an object.
func (s *ObjectService) Tasks(objectID uuid.UUID) ([]models.Task, error) {
	if _, err := s.FindOne(objectID); err != nil {
		return nil, err
	}

	tasks, err := s.objectRepo.Tasks(objectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list object tasks: %w", err)
	}
	return tasks, nil
}

// Progress reports the share of completed tasks, rounded to whole percent.
func (s *ObjectService) Progress(objectID uuid.UUID) (*ObjectProgress, error) {
	tasks, err := s.Tasks(objectID)
	if err != nil {
		return nil, err
	}

	total := len(tasks)
	completed := 0
	for _, task := range tasks {
		if task.Status == models.TaskStatusCompleted {
			completed++
		}
	}

	progress := 0
	if total > 0 {
		progress = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return &ObjectProgress{
		Progress:       progress,
		CompletedTasks: completed,
		TotalTasks:     total,
	}, nil
}

// AssignCrew attaches a crew to an object.
func (s *ObjectService) AssignCrew(objectID, crewID uuid.UUID) (*models.ConstructionObject, error) {
	object, err := s.FindOne(objectID)
	if err != nil {
		return nil, err
	}

	crew, err := s.crewRepo.FindByID(crewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCrewNotFound
		}
		return nil, fmt.Errorf("failed to find crew: %w", err)
	}

	if err := s.objectRepo.AddCrew(object, crew); err != nil {
		return nil, fmt.Errorf("failed to assign crew: %w", err)
	}

	return s.FindOne(objectID)
}

// UnassignCrew detaches a crew from an object.
func (s *ObjectService) UnassignCrew(objectID, crewID uuid.UUID) (*models.ConstructionObject, error) {
	object, err := s.FindOne(objectID)
	if err != nil {
		return nil, err
	}

	crew, err := s.crewRepo.FindByID(crewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCrewNotFound
		}
		return nil, fmt.Errorf("failed to find crew: %w", err)
	}

	if err := s.objectRepo.RemoveCrew(object, crew); err != nil {
		return nil, fmt.Errorf("failed to unassign crew: %w", err)
	}

	return s.FindOne(objectID)
}

// ensureForeman verifies that the ID resolves to an active foreman user.
func (s *ObjectService) ensureForeman(foremanID uuid.UUID) error {
	foreman, err := s.userRepo.FindByID(foremanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidForeman
		}
		return fmt.Errorf("failed to verify foreman: %w", err)
	}

	if foreman.Role != models.RoleForeman {
		return ErrInvalidForeman
	}

	return nil
}
