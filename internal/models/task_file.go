package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskFile stores metadata for an uploaded attachment. The blob itself
// lives outside the database; URL points at it.
type TaskFile struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	Filename     string         `gorm:"type:varchar(200);not null" json:"filename"`
	OriginalName string         `gorm:"type:varchar(500);not null" json:"originalName"`
	MimeType     string         `gorm:"type:varchar(100);not null" json:"mimeType"`
	Size         int64          `gorm:"not null" json:"size"`
	URL          string         `gorm:"not null" json:"url"`
	Description  *string        `gorm:"type:text" json:"description"`
	TaskID       uuid.UUID      `gorm:"type:uuid;not null" json:"taskId"`
	CreatedAt    time.Time      `json:"createdAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (f *TaskFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
