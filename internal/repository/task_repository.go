package repository

import (
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindAll lists active tasks, newest first, with relations
func (r *GormTaskRepository) FindAll() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("Object").
		Preload("Crew").
		Preload("Assignee").
		Preload("Creator").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds an active task by ID with relations
func (r *GormTaskRepository) FindByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("Object").
		Preload("Crew").
		Preload("Assignee").
		Preload("Creator").
		Preload("Files").
		Where("id = ? AND is_active = ?", id, true).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAnyByID finds a task by ID regardless of the active flag
func (r *GormTaskRepository) FindAnyByID(id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.
		Preload("Object").
		Preload("Crew").
		Preload("Assignee").
		Preload("Creator").
		Preload("Files").
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task and reports how many rows were affected
func (r *GormTaskRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Task{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// AddFile records attachment metadata for a task
func (r *GormTaskRepository) AddFile(file *models.TaskFile) error {
	return r.db.Create(file).Error
}

// Files lists non-deleted attachment metadata of a task
func (r *GormTaskRepository) Files(taskID uuid.UUID) ([]models.TaskFile, error) {
	var files []models.TaskFile
	if err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// DeleteFile soft deletes an attachment of a task
func (r *GormTaskRepository) DeleteFile(taskID, fileID uuid.UUID) (int64, error) {
	result := r.db.
		Where("task_id = ?", taskID).
		Delete(&models.TaskFile{}, "id = ?", fileID)
	return result.RowsAffected, result.Error
}
