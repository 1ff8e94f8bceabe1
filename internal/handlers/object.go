package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/dto"
	apierrors "github.com/MrAlexGov/BuildCrew-Pro/internal/errors"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ObjectHandler coordinates construction object HTTP handlers.
type ObjectHandler struct {
	objectService *services.ObjectService
}

// NewObjectHandler creates a new ObjectHandler.
func NewObjectHandler(objectService *services.ObjectService) *ObjectHandler {
	return &ObjectHandler{
		objectService: objectService,
	}
}

// List returns all active objects, newest first.
func (h *ObjectHandler) List(c *gin.Context) {
	objects, err := h.objectService.FindAll()
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTOs(objects))
}

// Get returns a single object by ID.
func (h *ObjectHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	object, err := h.objectService.FindOne(id)
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTO(*object))
}

// Create adds a new object with a responsible foreman.
func (h *ObjectHandler) Create(c *gin.Context) {
	type CreateObjectRequest struct {
		Name                 string     `json:"name" binding:"required"`
		Description          *string    `json:"description"`
		Address              string     `json:"address" binding:"required"`
		Client               string     `json:"client" binding:"required"`
		Budget               float64    `json:"budget"`
		StartDate            *time.Time `json:"startDate"`
		EndDate              *time.Time `json:"endDate"`
		ResponsibleForemanID string     `json:"responsibleForemanId" binding:"required"`
	}

	var req CreateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	foremanID, err := uuid.Parse(req.ResponsibleForemanID)
	if err != nil {
		apierrors.BadRequest(c, "Invalid responsible foreman ID")
		return
	}

	object, err := h.objectService.Create(services.CreateObjectInput{
		Name:                 req.Name,
		Description:          req.Description,
		Address:              req.Address,
		Client:               req.Client,
		Budget:               req.Budget,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		ResponsibleForemanID: foremanID,
	})
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToObjectDTO(*object))
}

// Update merges provided fields into an existing object.
func (h *ObjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	type UpdateObjectRequest struct {
		Name                 *string    `json:"name"`
		Description          *string    `json:"description"`
		Address              *string    `json:"address"`
		Client               *string    `json:"client"`
		Budget               *float64   `json:"budget"`
		StartDate            *time.Time `json:"startDate"`
		EndDate              *time.Time `json:"endDate"`
		IsActive             *bool      `json:"isActive"`
		ResponsibleForemanID *string    `json:"responsibleForemanId"`
	}

	var req UpdateObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateObjectInput{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Client:      req.Client,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
	}
	if req.ResponsibleForemanID != nil {
		foremanID, err := uuid.Parse(*req.ResponsibleForemanID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid responsible foreman ID")
			return
		}
		input.ResponsibleForemanID = &foremanID
	}

	object, err := h.objectService.Update(id, input)
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTO(*object))
}

// Delete soft deletes an object.
func (h *ObjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	if err := h.objectService.Remove(id); err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Object deleted successfully",
	})
}

// ListByForeman returns the active objects managed by a foreman.
func (h *ObjectHandler) ListByForeman(c *gin.Context) {
	foremanID, err := uuid.Parse(c.Param("foremanId"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid foreman ID")
		return
	}

	objects, err := h.objectService.FindByForeman(foremanID)
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTOs(objects))
}

// Tasks returns the active tasks of an object.
func (h *ObjectHandler) Tasks(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	tasks, err := h.objectService.Tasks(id)
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// Progress returns the task completion summary of an object.
func (h *ObjectHandler) Progress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	progress, err := h.objectService.Progress(id)
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// AssignCrew attaches a crew to an object.
func (h *ObjectHandler) AssignCrew(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	crewID, err := uuid.Parse(c.Param("crewId"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return
	}

	object, err := h.objectService.AssignCrew(objectID, crewID)
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTO(*object))
}

// UnassignCrew detaches a crew from an object.
func (h *ObjectHandler) UnassignCrew(c *gin.Context) {
	objectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	crewID, err := uuid.Parse(c.Param("crewId"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid crew ID")
		return
	}

	object, err := h.objectService.UnassignCrew(objectID, crewID)
	if err != nil {
		respondObjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTO(*object))
}

func respondObjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrObjectNotFound),
		errors.Is(err, services.ErrCrewNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidForeman):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
