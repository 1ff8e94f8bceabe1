package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOnHold     TaskStatus = "on_hold"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID                uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	Title             string         `gorm:"type:varchar(200);not null" json:"title"`
	Description       *string        `gorm:"type:text" json:"description"`
	Status            TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority          TaskPriority   `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	ObjectID          uuid.UUID      `gorm:"type:uuid;not null" json:"objectId"`
	CrewID            *uuid.UUID     `gorm:"type:uuid" json:"crewId"`
	AssigneeID        *uuid.UUID     `gorm:"type:uuid" json:"assigneeId"`
	CreatorID         uuid.UUID      `gorm:"type:uuid;not null" json:"creatorId"`
	StartDate         *time.Time     `gorm:"type:date" json:"startDate"`
	DueDate           *time.Time     `gorm:"type:date" json:"dueDate"`
	EstimatedHours    *float64       `gorm:"type:decimal(5,2)" json:"estimatedHours"`
	ActualHours       *float64       `gorm:"type:decimal(5,2)" json:"actualHours"`
	CompletionComment *string        `gorm:"type:text" json:"completionComment"`
	IsActive          bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Object   ConstructionObject `gorm:"foreignKey:ObjectID" json:"object,omitempty"`
	Crew     *Crew              `gorm:"foreignKey:CrewID" json:"crew,omitempty"`
	Assignee *User              `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Creator  User               `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Files    []TaskFile         `gorm:"foreignKey:TaskID" json:"files,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsOverdue reports whether the due date has passed for an unfinished task.
func (t *Task) IsOverdue() bool {
	return t.DueDate != nil && time.Now().After(*t.DueDate) && t.Status != TaskStatusCompleted
}

// Progress maps the task status onto a coarse completion percentage.
func (t *Task) Progress() int {
	switch t.Status {
	case TaskStatusInProgress:
		return 50
	case TaskStatusCompleted:
		return 100
	default:
		return 0
	}
}
