package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Crew struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members []User               `gorm:"many2many:crew_members" json:"members,omitempty"`
	Objects []ConstructionObject `gorm:"many2many:object_crews" json:"objects,omitempty"`
	Tasks   []Task               `gorm:"foreignKey:CrewID" json:"tasks,omitempty"`
}

func (c *Crew) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// MemberCount returns the number of loaded members.
func (c *Crew) MemberCount() int {
	return len(c.Members)
}

// ActiveMemberCount returns the number of loaded members still active.
func (c *Crew) ActiveMemberCount() int {
	count := 0
	for _, m := range c.Members {
		if m.IsActive {
			count++
		}
	}
	return count
}
