package repository

import (
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCrewRepository is a GORM implementation of CrewRepository
type GormCrewRepository struct {
	db *gorm.DB
}

// NewCrewRepository creates a new CrewRepository
func NewCrewRepository(db *gorm.DB) CrewRepository {
	return &GormCrewRepository{db: db}
}

// Create creates a new crew
func (r *GormCrewRepository) Create(crew *models.Crew) error {
	return r.db.Create(crew).Error
}

// FindAll lists active crews with members preloaded
func (r *GormCrewRepository) FindAll() ([]models.Crew, error) {
	var crews []models.Crew
	if err := r.db.
		Preload("Members").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&crews).Error; err != nil {
		return nil, err
	}
	return crews, nil
}

// FindByID finds an active crew by ID with members and objects
func (r *GormCrewRepository) FindByID(id uuid.UUID) (*models.Crew, error) {
	var crew models.Crew
	if err := r.db.
		Preload("Members").
		Preload("Objects").
		Where("id = ? AND is_active = ?", id, true).
		First(&crew).Error; err != nil {
		return nil, err
	}
	return &crew, nil
}

// Update persists changes to a crew
func (r *GormCrewRepository) Update(crew *models.Crew) error {
	return r.db.Save(crew).Error
}

// Delete soft deletes a crew and reports how many rows were affected
func (r *GormCrewRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.Crew{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// AddMember adds a user to a crew (no-op when already a member)
func (r *GormCrewRepository) AddMember(crew *models.Crew, user *models.User) error {
	return r.db.Model(crew).Association("Members").Append(user)
}

// RemoveMember removes a user from a crew
func (r *GormCrewRepository) RemoveMember(crew *models.Crew, user *models.User) error {
	return r.db.Model(crew).Association("Members").Delete(user)
}
