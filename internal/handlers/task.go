package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/dto"
	apierrors "github.com/MrAlexGov/BuildCrew-Pro/internal/errors"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/middleware"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// List returns all active tasks, newest first.
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.FindAll()
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// Get returns a single task by ID.
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.FindOne(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Create adds a new task. The authenticated user becomes the creator.
func (h *TaskHandler) Create(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title          string     `json:"title" binding:"required"`
		Description    *string    `json:"description"`
		Status         string     `json:"status"`
		Priority       string     `json:"priority"`
		ObjectID       string     `json:"objectId" binding:"required"`
		CrewID         *string    `json:"crewId"`
		AssigneeID     *string    `json:"assigneeId"`
		StartDate      *time.Time `json:"startDate"`
		DueDate        *time.Time `json:"dueDate"`
		EstimatedHours *float64   `json:"estimatedHours"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	objectID, err := uuid.Parse(req.ObjectID)
	if err != nil {
		apierrors.BadRequest(c, "Invalid object ID")
		return
	}

	input := services.CreateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.TaskStatus(req.Status),
		Priority:       models.TaskPriority(req.Priority),
		ObjectID:       objectID,
		CreatorID:      user.ID,
		StartDate:      req.StartDate,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
	}

	if req.CrewID != nil {
		crewID, err := uuid.Parse(*req.CrewID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid crew ID")
			return
		}
		input.CrewID = &crewID
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee ID")
			return
		}
		input.AssigneeID = &assigneeID
	}

	task, err := h.taskService.Create(input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// Update merges provided fields into an existing task.
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title             *string    `json:"title"`
		Description       *string    `json:"description"`
		Status            *string    `json:"status"`
		Priority          *string    `json:"priority"`
		ObjectID          *string    `json:"objectId"`
		CrewID            *string    `json:"crewId"`
		AssigneeID        *string    `json:"assigneeId"`
		StartDate         *time.Time `json:"startDate"`
		DueDate           *time.Time `json:"dueDate"`
		EstimatedHours    *float64   `json:"estimatedHours"`
		ActualHours       *float64   `json:"actualHours"`
		CompletionComment *string    `json:"completionComment"`
		IsActive          *bool      `json:"isActive"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:             req.Title,
		Description:       req.Description,
		StartDate:         req.StartDate,
		DueDate:           req.DueDate,
		EstimatedHours:    req.EstimatedHours,
		ActualHours:       req.ActualHours,
		CompletionComment: req.CompletionComment,
		IsActive:          req.IsActive,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.ObjectID != nil {
		objectID, err := uuid.Parse(*req.ObjectID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid object ID")
			return
		}
		input.ObjectID = &objectID
	}
	if req.CrewID != nil {
		crewID, err := uuid.Parse(*req.CrewID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid crew ID")
			return
		}
		input.CrewID = &crewID
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			apierrors.BadRequest(c, "Invalid assignee ID")
			return
		}
		input.AssigneeID = &assigneeID
	}

	task, err := h.taskService.Update(id, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Delete soft deletes a task.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.Remove(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// AddFile records attachment metadata for a task.
func (h *TaskHandler) AddFile(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type AddFileRequest struct {
		Filename     string  `json:"filename" binding:"required"`
		OriginalName string  `json:"originalName" binding:"required"`
		MimeType     string  `json:"mimeType" binding:"required"`
		Size         int64   `json:"size" binding:"required"`
		URL          string  `json:"url" binding:"required"`
		Description  *string `json:"description"`
	}

	var req AddFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	file, err := h.taskService.AddFile(taskID, services.TaskFileInput{
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		URL:          req.URL,
		Description:  req.Description,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskFileDTO(*file))
}

// Files lists the attachment metadata of a task.
func (h *TaskHandler) Files(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	files, err := h.taskService.Files(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskFileDTOs(files))
}

// DeleteFile soft deletes an attachment of a task.
func (h *TaskHandler) DeleteFile(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	fileID, err := uuid.Parse(c.Param("fileId"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid file ID")
		return
	}

	if err := h.taskService.RemoveFile(taskID, fileID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrTaskFileNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrObjectNotFound),
		errors.Is(err, services.ErrCrewNotFound),
		errors.Is(err, services.ErrAssigneeNotFound),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrObjectImmutable):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
