package dto

import (
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
)

// ObjectDTO represents a construction object in API responses
type ObjectDTO struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Description          *string    `json:"description"`
	Address              string     `json:"address"`
	Client               string     `json:"client"`
	Budget               float64    `json:"budget"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	IsActive             bool       `json:"isActive"`
	IsOverdue            bool       `json:"isOverdue"`
	ResponsibleForemanID uuid.UUID  `json:"responsibleForemanId"`
	ResponsibleForeman   *UserDTO   `json:"responsibleForeman,omitempty"`
	Crews                []CrewDTO  `json:"crews,omitempty"`
	TaskCount            int        `json:"taskCount"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// ToObjectDTO converts a ConstructionObject model to ObjectDTO
func ToObjectDTO(object models.ConstructionObject) ObjectDTO {
	dto := ObjectDTO{
		ID:                   object.ID,
		Name:                 object.Name,
		Description:          object.Description,
		Address:              object.Address,
		Client:               object.Client,
		Budget:               object.Budget,
		StartDate:            object.StartDate,
		EndDate:              object.EndDate,
		IsActive:             object.IsActive,
		IsOverdue:            object.IsOverdue(),
		ResponsibleForemanID: object.ResponsibleForemanID,
		TaskCount:            len(object.Tasks),
		CreatedAt:            object.CreatedAt,
		UpdatedAt:            object.UpdatedAt,
	}

	// Include foreman if preloaded
	if object.ResponsibleForeman.ID != uuid.Nil {
		foreman := ToUserDTO(object.ResponsibleForeman)
		dto.ResponsibleForeman = &foreman
	}

	// Include crews if preloaded
	if len(object.Crews) > 0 {
		dto.Crews = ToCrewDTOs(object.Crews)
	}

	return dto
}

// ToObjectDTOs converts a slice of objects
func ToObjectDTOs(objects []models.ConstructionObject) []ObjectDTO {
	dtos := make([]ObjectDTO, len(objects))
	for i, object := range objects {
		dtos[i] = ToObjectDTO(object)
	}
	return dtos
}
