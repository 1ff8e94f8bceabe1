package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner   UserRole = "owner"
	RoleAdmin   UserRole = "admin"
	RoleForeman UserRole = "foreman"
	RoleWorker  UserRole = "worker"
)

// IsValid reports whether the role is one of the known values.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleForeman, RoleWorker:
		return true
	}
	return false
}

type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	FirstName      string         `gorm:"type:varchar(100);not null" json:"firstName"`
	LastName       string         `gorm:"type:varchar(100);not null" json:"lastName"`
	Email          string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash   string         `gorm:"type:varchar(255);not null" json:"-"`
	Role           UserRole       `gorm:"type:varchar(20);not null;default:'worker'" json:"role"`
	Phone          *string        `gorm:"type:varchar(50)" json:"phone"`
	Specialization *string        `gorm:"type:varchar(100)" json:"specialization"`
	Grade          *string        `gorm:"type:varchar(50)" json:"grade"`
	IsActive       bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Objects       []ConstructionObject `gorm:"foreignKey:ResponsibleForemanID" json:"objects,omitempty"`
	Crews         []Crew               `gorm:"many2many:crew_members" json:"crews,omitempty"`
	AssignedTasks []Task               `gorm:"foreignKey:AssigneeID" json:"-"`
	CreatedTasks  []Task               `gorm:"foreignKey:CreatorID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
