package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConstructionObject is a job site managed by exactly one responsible foreman.
type ConstructionObject struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	Name                 string         `gorm:"type:varchar(200);not null" json:"name"`
	Description          *string        `gorm:"type:text" json:"description"`
	Address              string         `gorm:"type:varchar(500);not null" json:"address"`
	Client               string         `gorm:"type:varchar(200);not null" json:"client"`
	Budget               float64        `gorm:"type:decimal(10,2)" json:"budget"`
	StartDate            *time.Time     `gorm:"type:date" json:"startDate"`
	EndDate              *time.Time     `gorm:"type:date" json:"endDate"`
	IsActive             bool           `gorm:"not null;default:true" json:"isActive"`
	ResponsibleForemanID uuid.UUID      `gorm:"type:uuid;not null" json:"responsibleForemanId"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedAt            time.Time      `json:"updatedAt"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	ResponsibleForeman User   `gorm:"foreignKey:ResponsibleForemanID" json:"responsibleForeman,omitempty"`
	Crews              []Crew `gorm:"many2many:object_crews" json:"crews,omitempty"`
	Tasks              []Task `gorm:"foreignKey:ObjectID" json:"tasks,omitempty"`
}

func (o *ConstructionObject) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsOverdue reports whether the planned end date has passed.
func (o *ConstructionObject) IsOverdue() bool {
	return o.EndDate != nil && time.Now().After(*o.EndDate)
}
