package handlers

import (
	"errors"
	"net/http"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/dto"
	apierrors "github.com/MrAlexGov/BuildCrew-Pro/internal/errors"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler coordinates user management HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// List returns all active users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.FindAll()
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// Get returns a single user by ID.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.FindOne(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Create adds a new user.
func (h *UserHandler) Create(c *gin.Context) {
	type CreateUserRequest struct {
		Email          string  `json:"email" binding:"required,email"`
		Password       string  `json:"password" binding:"required"`
		FirstName      string  `json:"firstName" binding:"required"`
		LastName       string  `json:"lastName" binding:"required"`
		Role           string  `json:"role"`
		Phone          *string `json:"phone"`
		Specialization *string `json:"specialization"`
		Grade          *string `json:"grade"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Role:           models.UserRole(req.Role),
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Grade:          req.Grade,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Update merges provided fields into an existing user.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	type UpdateUserRequest struct {
		Email          *string `json:"email" binding:"omitempty,email"`
		FirstName      *string `json:"firstName"`
		LastName       *string `json:"lastName"`
		Password       *string `json:"password"`
		Role           *string `json:"role"`
		Phone          *string `json:"phone"`
		Specialization *string `json:"specialization"`
		Grade          *string `json:"grade"`
		IsActive       *bool   `json:"isActive"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateUserInput{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Password:       req.Password,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		Grade:          req.Grade,
		IsActive:       req.IsActive,
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.Update(id, input)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Delete soft deletes a user.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Remove(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// ListByRole returns active users with the given role.
func (h *UserHandler) ListByRole(c *gin.Context) {
	role := models.UserRole(c.Param("role"))

	users, err := h.userService.FindByRole(role)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// ForemanObjects returns the objects managed by a foreman.
func (h *UserHandler) ForemanObjects(c *gin.Context) {
	foremanID, err := uuid.Parse(c.Param("foremanId"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid foreman ID")
		return
	}

	objects, err := h.userService.ForemanObjects(foremanID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToObjectDTOs(objects))
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrForemanNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
