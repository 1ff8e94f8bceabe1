package repository

import (
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindAll lists all active users
func (r *GormUserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.
		Preload("Objects").
		Preload("Crews").
		Where("is_active = ?", true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID finds an active user by ID
func (r *GormUserRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.
		Preload("Objects").
		Preload("Crews").
		Where("id = ? AND is_active = ?", id, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email regardless of the active flag
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByEmail finds an active user by email
func (r *GormUserRepository) FindActiveByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDAndEmail finds a user matching both token claims
func (r *GormUserRepository) FindByIDAndEmail(id uuid.UUID, email string) (*models.User, error) {
	var user models.User
	if err := r.db.
		Where("id = ? AND email = ?", id, email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByRole lists active users with the given role
func (r *GormUserRepository) FindByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	if err := r.db.
		Preload("Objects").
		Preload("Crews").
		Where("role = ? AND is_active = ?", role, true).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete soft deletes a user and reports how many rows were affected
func (r *GormUserRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	return result.RowsAffected, result.Error
}
