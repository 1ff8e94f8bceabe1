package dto

import (
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/google/uuid"
)

// CrewDTO represents a crew in API responses
type CrewDTO struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	IsActive          bool      `json:"isActive"`
	MemberCount       int       `json:"memberCount"`
	ActiveMemberCount int       `json:"activeMemberCount"`
	Members           []UserDTO `json:"members,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ToCrewDTO converts a Crew model to CrewDTO
func ToCrewDTO(crew models.Crew) CrewDTO {
	dto := CrewDTO{
		ID:                crew.ID,
		Name:              crew.Name,
		Description:       crew.Description,
		IsActive:          crew.IsActive,
		MemberCount:       crew.MemberCount(),
		ActiveMemberCount: crew.ActiveMemberCount(),
		CreatedAt:         crew.CreatedAt,
		UpdatedAt:         crew.UpdatedAt,
	}

	// Include members if preloaded
	if len(crew.Members) > 0 {
		dto.Members = ToUserDTOs(crew.Members)
	}

	return dto
}

// ToCrewDTOs converts a slice of crews
func ToCrewDTOs(crews []models.Crew) []CrewDTO {
	dtos := make([]CrewDTO, len(crews))
	for i, crew := range crews {
		dtos[i] = ToCrewDTO(crew)
	}
	return dtos
}
