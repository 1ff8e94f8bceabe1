package repository

import (
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormObjectRepository is a GORM implementation of ObjectRepository
type GormObjectRepository struct {
	db *gorm.DB
}

// NewObjectRepository creates a new ObjectRepository
func NewObjectRepository(db *gorm.DB) ObjectRepository {
	return &GormObjectRepository{db: db}
}

// Create creates a new object
func (r *GormObjectRepository) Create(object *models.ConstructionObject) error {
	return r.db.Create(object).Error
}

// FindAll lists active objects, newest first, with relations
func (r *GormObjectRepository) FindAll() ([]models.ConstructionObject, error) {
	var objects []models.ConstructionObject
	if err := r.db.
		Preload("ResponsibleForeman").
		Preload("Crews").
		Preload("Tasks").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&objects).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

// FindByID finds an active object by ID with relations
func (r *GormObjectRepository) FindByID(id uuid.UUID) (*models.ConstructionObject, error) {
	var object models.ConstructionObject
	if err := r.db.
		Preload("ResponsibleForeman").
		Preload("Crews").
		Preload("Tasks").
		Where("id = ? AND is_active = ?", id, true).
		First(&object).Error; err != nil {
		return nil, err
	}
	return &object, nil
}

// FindAnyByID finds an object by ID regardless of the active flag
func (r *GormObjectRepository) FindAnyByID(id uuid.UUID) (*models.ConstructionObject, error) {
	var object models.ConstructionObject
	if err := r.db.
		Preload("ResponsibleForeman").
		Preload("Crews").
		Preload("Tasks").
		Where("id = ?", id).
		First(&object).Error; err != nil {
		return nil, err
	}
	return &object, nil
}

// FindByForeman lists active objects managed by the given foreman
func (r *GormObjectRepository) FindByForeman(foremanID uuid.UUID) ([]models.ConstructionObject, error) {
	var objects []models.ConstructionObject
	if err := r.db.
		Preload("Crews").
		Preload("Tasks").
		Where("responsible_foreman_id = ? AND is_active = ?", foremanID, true).
		Order("created_at DESC").
		Find(&objects).Error; err != nil {
		return nil, err
	}
	return objects, nil
}

// Update persists changes to an object
func (r *GormObjectRepository) Update(object *models.ConstructionObject) error {
	return r.db.Save(object).Error
}

// Delete soft deletes an object and reports how many rows were affected
func (r *GormObjectRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.ConstructionObject{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// Tasks lists the active tasks of an object with assignee and crew
func (r *GormObjectRepository) Tasks(objectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("Assignee").
		Preload("Crew").
		Where("object_id = ? AND is_active = ?", objectID, true).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// AddCrew attaches a crew to an object (no-op when already attached)
func (r *GormObjectRepository) AddCrew(object *models.ConstructionObject, crew *models.Crew) error {
	return r.db.Model(object).Association("Crews").Append(crew)
}

// RemoveCrew detaches a crew from an object
func (r *GormObjectRepository) RemoveCrew(object *models.ConstructionObject, crew *models.Crew) error {
	return r.db.Model(object).Association("Crews").Delete(crew)
}
