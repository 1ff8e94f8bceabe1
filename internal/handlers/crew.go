package handlers

import (
	"errors"
	"net/http"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/dto"
	apierrors "github.com/MrAlexGov/BuildCrew-Pro/internal/errors"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CrewHandler coordinates crew HTTP handlers.
type CrewHandler struct {
	crewService *services.CrewService
}

// NewCrewHandler creates a new CrewHandler.
func NewCrewHandler(crewService *services.CrewService) *CrewHandler {
	return &CrewHandler{
		crewService: crewService,
	}
}

// List returns all active crews.
func (h *CrewHandler) List(c *gin.Context) {
	crews, err := h.crewService.FindAll()
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCrewDTOs(crews))
}

// Get returns a single crew by ID.
func (h *CrewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return
	}

	crew, err := h.crewService.FindOne(id)
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCrewDTO(*crew))
}

// Create adds a new crew.
func (h *CrewHandler) Create(c *gin.Context) {
	type CreateCrewRequest struct {
		Name        string  `json:"name" binding:"required"`
		Description *string `json:"description"`
	}

	var req CreateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	crew, err := h.crewService.Create(services.CreateCrewInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCrewDTO(*crew))
}

// Update merges provided fields into an existing crew.
func (h *CrewHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return
	}

	type UpdateCrewRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"isActive"`
	}

	var req UpdateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	crew, err := h.crewService.Update(id, services.UpdateCrewInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCrewDTO(*crew))
}

// Delete soft deletes a crew.
func (h *CrewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return
	}

	if err := h.crewService.Remove(id); err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Crew deleted successfully",
	})
}

// AddMember adds a user to a crew.
func (h *CrewHandler) AddMember(c *gin.Context) {
	crewID, userID, ok := crewMemberIDs(c)
	if !ok {
		return
	}

	crew, err := h.crewService.AddMember(crewID, userID)
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCrewDTO(*crew))
}

// RemoveMember removes a user from a crew.
func (h *CrewHandler) RemoveMember(c *gin.Context) {
	crewID, userID, ok := crewMemberIDs(c)
	if !ok {
		return
	}

	crew, err := h.crewService.RemoveMember(crewID, userID)
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCrewDTO(*crew))
}

// Members returns the members of a crew.
func (h *CrewHandler) Members(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return
	}

	members, err := h.crewService.Members(id)
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(members))
}

// Objects returns the objects a crew is assigned to.
func (h *CrewHandler) Objects(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return
	}

	objects, err := h.crewService.Objects(id)
	if err != nil {
		respondCrewError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTOs(objects))
}

func crewMemberIDs(c *gin.Context) (crewID, userID uuid.UUID, ok bool) {
	crewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return uuid.Nil, uuid.Nil, false
	}

	userID, err = uuid.Parse(c.Param("userId"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return uuid.Nil, uuid.Nil, false
	}

	return crewID, userID, true
}

func respondCrewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCrewNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
