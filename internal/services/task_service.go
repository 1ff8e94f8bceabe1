package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskFileNotFound = errors.New("task file not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidStatus    = errors.New("unknown task status")
	ErrInvalidPriority  = errors.New("unknown task priority")
	ErrAssigneeNotFound = errors.New("assignee not found")
	ErrObjectImmutable  = errors.New("task object cannot be changed")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo   repository.TaskRepository
	objectRepo repository.ObjectRepository
	crewRepo   repository.CrewRepository
	userRepo   repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, objectRepo repository.ObjectRepository, crewRepo repository.CrewRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		objectRepo: objectRepo,
		crewRepo:   crewRepo,
		userRepo:   userRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title          string
	Description    *string
	Status         models.TaskStatus
	Priority       models.TaskPriority
	ObjectID       uuid.UUID
	CrewID         *uuid.UUID
	AssigneeID     *uuid.UUID
	CreatorID      uuid.UUID
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *float64
}

// UpdateTaskInput represents a partial update; nil fields stay unchanged.
// ObjectID is present only to reject attempts to move a task between
// objects; the reference is immutable after creation.
type UpdateTaskInput struct {
	Title             *string
	Description       *string
	Status            *models.TaskStatus
	Priority          *models.TaskPriority
	ObjectID          *uuid.UUID
	CrewID            *uuid.UUID
	AssigneeID        *uuid.UUID
	StartDate         *time.Time
	DueDate           *time.Time
	EstimatedHours    *float64
	ActualHours       *float64
	CompletionComment *string
	IsActive          *bool
}

// TaskFileInput carries attachment metadata. Storage of the blob itself
// happens elsewhere; only the descriptor is recorded.
type TaskFileInput struct {
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	URL          string
	Description  *string
}

// FindAll lists active tasks, newest first.
func (s *TaskService) FindAll() ([]models.Task, error) {
	tasks, err := s.taskRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// FindOne returns an active task by ID.
func (s *TaskService) FindOne(id uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// Create validates references and persists a new task.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.IsValid() {
		return nil, ErrInvalidPriority
	}

	if _, err := s.objectRepo.FindByID(input.ObjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to verify object: %w", err)
	}

	if input.CrewID != nil {
		if _, err := s.crewRepo.FindByID(*input.CrewID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCrewNotFound
			}
			return nil, fmt.Errorf("failed to verify crew: %w", err)
		}
	}

	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		ObjectID:       input.ObjectID,
		CrewID:         input.CrewID,
		AssigneeID:     input.AssigneeID,
		CreatorID:      input.CreatorID,
		StartDate:      input.StartDate,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		IsActive:       true,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.FindOne(task.ID)
}

// Update merges provided fields into an existing task.
func (s *TaskService) Update(id uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.ObjectID != nil && *input.ObjectID != task.ObjectID {
		return nil, ErrObjectImmutable
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.CrewID != nil {
		if _, err := s.crewRepo.FindByID(*input.CrewID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCrewNotFound
			}
			return nil, fmt.Errorf("failed to verify crew: %w", err)
		}
		task.CrewID = input.CrewID
	}
	if input.AssigneeID != nil {
		if _, err := s.userRepo.FindByID(*input.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify assignee: %w", err)
		}
		task.AssigneeID = input.AssigneeID
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.EstimatedHours != nil {
		task.EstimatedHours = input.EstimatedHours
	}
	if input.ActualHours != nil {
		task.ActualHours = input.ActualHours
	}
	if input.CompletionComment != nil {
		task.CompletionComment = input.CompletionComment
	}
	if input.IsActive != nil {
		task.IsActive = *input.IsActive
	}

	// Drop preloaded associations so Save only touches the tasks row.
	task.Object = models.ConstructionObject{}
	task.Crew = nil
	task.Assignee = nil
	task.Creator = models.User{}
	task.Files = nil

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	// Reload without the active-only filter so a deactivating update still
	// returns the saved task instead of a not-found.
	updated, err := s.taskRepo.FindAnyByID(task.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}
	return updated, nil
}

// Remove soft deletes a task.
func (s *TaskService) Remove(id uuid.UUID) error {
	affected, err := s.taskRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// AddFile records attachment metadata for a task.
func (s *TaskService) AddFile(taskID uuid.UUID, input TaskFileInput) (*models.TaskFile, error) {
	if _, err := s.FindOne(taskID); err != nil {
		return nil, err
	}

	file := &models.TaskFile{
		Filename:     input.Filename,
		OriginalName: input.OriginalName,
		MimeType:     input.MimeType,
		Size:         input.Size,
		URL:          input.URL,
		Description:  input.Description,
		TaskID:       taskID,
	}

	if err := s.taskRepo.AddFile(file); err != nil {
		return nil, fmt.Errorf("failed to add task file: %w", err)
	}

	return file, nil
}

// Files lists non-deleted attachment metadata of a task.
func (s *TaskService) Files(taskID uuid.UUID) ([]models.TaskFile, error) {
	if _, err := s.FindOne(taskID); err != nil {
		return nil, err
	}

	files, err := s.taskRepo.Files(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task files: %w", err)
	}
	return files, nil
}

// RemoveFile soft deletes an attachment of a task.
func (s *TaskService) RemoveFile(taskID, fileID uuid.UUID) error {
	if _, err := s.FindOne(taskID); err != nil {
		return err
	}

	affected, err := s.taskRepo.DeleteFile(taskID, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete task file: %w", err)
	}
	if affected == 0 {
		return ErrTaskFileNotFound
	}
	return nil
}
