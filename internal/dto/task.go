package dto

import (
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID                uuid.UUID           `json:"id"`
	Title             string              `json:"title"`
	Description       *string             `json:"description"`
	Status            models.TaskStatus   `json:"status"`
	Priority          models.TaskPriority `json:"priority"`
	ObjectID          uuid.UUID           `json:"objectId"`
	CrewID            *uuid.UUID          `json:"crewId"`
	AssigneeID        *uuid.UUID          `json:"assigneeId"`
	CreatorID         uuid.UUID           `json:"creatorId"`
	StartDate         *time.Time          `json:"startDate"`
	DueDate           *time.Time          `json:"dueDate"`
	EstimatedHours    *float64            `json:"estimatedHours"`
	ActualHours       *float64            `json:"actualHours"`
	CompletionComment *string             `json:"completionComment"`
	IsActive          bool                `json:"isActive"`
	IsOverdue         bool                `json:"isOverdue"`
	Progress          int                 `json:"progress"`
	Object            *ObjectDTO          `json:"object,omitempty"`
	Crew              *CrewDTO            `json:"crew,omitempty"`
	Assignee          *UserDTO            `json:"assignee,omitempty"`
	Creator           *UserDTO            `json:"creator,omitempty"`
	Files             []TaskFileDTO       `json:"files,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

// TaskFileDTO represents attachment metadata in API responses
type TaskFileDTO struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	Description  *string   `json:"description,omitempty"`
	TaskID       uuid.UUID `json:"taskId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		Status:            task.Status,
		Priority:          task.Priority,
		ObjectID:          task.ObjectID,
		CrewID:            task.CrewID,
		AssigneeID:        task.AssigneeID,
		CreatorID:         task.CreatorID,
		StartDate:         task.StartDate,
		DueDate:           task.DueDate,
		EstimatedHours:    task.EstimatedHours,
		ActualHours:       task.ActualHours,
		CompletionComment: task.CompletionComment,
		IsActive:          task.IsActive,
		IsOverdue:         task.IsOverdue(),
		Progress:          task.Progress(),
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}

	// Include relations if preloaded
	if task.Object.ID != uuid.Nil {
		object := ToObjectDTO(task.Object)
		dto.Object = &object
	}
	if task.Crew != nil {
		crew := ToCrewDTO(*task.Crew)
		dto.Crew = &crew
	}
	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}
	if task.Creator.ID != uuid.Nil {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}
	if len(task.Files) > 0 {
		dto.Files = ToTaskFileDTOs(task.Files)
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskFileDTO converts a TaskFile model to TaskFileDTO
func ToTaskFileDTO(file models.TaskFile) TaskFileDTO {
	return TaskFileDTO{
		ID:           file.ID,
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		Size:         file.Size,
		URL:          file.URL,
		Description:  file.Description,
		TaskID:       file.TaskID,
		CreatedAt:    file.CreatedAt,
	}
}

// ToTaskFileDTOs converts a slice of task files
func ToTaskFileDTOs(files []models.TaskFile) []TaskFileDTO {
	dtos := make([]TaskFileDTO, len(files))
	for i, file := range files {
		dtos[i] = ToTaskFileDTO(file)
	}
	return dtos
}
