package repository

import (
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindAll lists all active users
	FindAll() ([]models.User, error)

	// FindByID finds an active user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email regardless of the active flag
	FindByEmail(email string) (*models.User, error)

	// FindActiveByEmail finds an active user by email
	FindActiveByEmail(email string) (*models.User, error)

	// FindByIDAndEmail finds a user matching both token claims
	FindByIDAndEmail(id uuid.UUID, email string) (*models.User, error)

	// FindByRole lists active users with the given role
	FindByRole(role models.UserRole) ([]models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// Delete soft deletes a user and reports how many rows were affected
	Delete(id uuid.UUID) (int64, error)
}

// ObjectRepository defines the interface for construction object data access
type ObjectRepository interface {
	// Create creates a new object
	Create(object *models.ConstructionObject) error

	// FindAll lists active objects, newest first, with relations
	FindAll() ([]models.ConstructionObject, error)

	// FindByID finds an active object by ID with relations
	FindByID(id uuid.UUID) (*models.ConstructionObject, error)

	// FindAnyByID finds an object by ID regardless of the active flag
	FindAnyByID(id uuid.UUID) (*models.ConstructionObject, error)

	// FindByForeman lists active objects managed by the given foreman
	FindByForeman(foremanID uuid.UUID) ([]models.ConstructionObject, error)

	// Update persists changes to an object
	Update(object *models.ConstructionObject) error

	// Delete soft deletes an object and reports how many rows were affected
	Delete(id uuid.UUID) (int64, error)

	// Tasks lists the active tasks of an object with assignee and crew
	Tasks(objectID uuid.UUID) ([]models.Task, error)

	// AddCrew attaches a crew to an object (no-op when already attached)
	AddCrew(object *models.ConstructionObject, crew *models.Crew) error

	// RemoveCrew detaches a crew from an object
	RemoveCrew(object *models.ConstructionObject, crew *models.Crew) error
}

// CrewRepository defines the interface for crew data access
type CrewRepository interface {
	// Create creates a new crew
	Create(crew *models.Crew) error

	// FindAll lists active crews with members preloaded
	FindAll() ([]models.Crew, error)

	// FindByID finds an active crew by ID with members and objects
	FindByID(id uuid.UUID) (*models.Crew, error)

	// Update persists changes to a crew
	Update(crew *models.Crew) error

	// Delete soft deletes a crew and reports how many rows were affected
	Delete(id uuid.UUID) (int64, error)

	// AddMember adds a user to a crew (no-op when already a member)
	AddMember(crew *models.Crew, user *models.User) error

	// RemoveMember removes a user from a crew
	RemoveMember(crew *models.Crew, user *models.User) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindAll lists active tasks, newest first, with relations
	FindAll() ([]models.Task, error)

	// FindByID finds an active task by ID with relations
	FindByID(id uuid.UUID) (*models.Task, error)

	// FindAnyByID finds a task by ID regardless of the active flag
	FindAnyByID(id uuid.UUID) (*models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete soft deletes a task and reports how many rows were affected
	Delete(id uuid.UUID) (int64, error)

	// AddFile records attachment metadata for a task
	AddFile(file *models.TaskFile) error

	// Files lists non-deleted attachment metadata of a task
	Files(taskID uuid.UUID) ([]models.TaskFile, error)

	// DeleteFile soft deletes an attachment of a task
	DeleteFile(taskID, fileID uuid.UUID) (int64, error)
}
