package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskman/internal/model"
	"taskman/internal/repository"
)

type TaskHandler struct {
	repo repository.TaskRepositoryInterface
}

func NewTaskHandler(repo repository.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{repo: repo}
}

// TaskCreateRequest carries the caller-controlled task fields. The owner is
// never taken from the payload; it always comes from the auth context.
type TaskCreateRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
}

type TaskUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
}

type BulkCreateRequest struct {
	Tasks []TaskCreateRequest `json:"tasks" binding:"required,min=1,dive"`
}

func (r *TaskCreateRequest) toModel(userID string) model.Task {
	task := model.Task{
		UserID:      userID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
	}
	if r.Completed != nil {
		task.Completed = *r.Completed
	}
	return task
}

// fields returns the subset of columns present in the update payload.
func (r *TaskUpdateRequest) fields() map[string]any {
	fields := make(map[string]any)
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Completed != nil {
		fields["completed"] = *r.Completed
	}
	if r.Category != nil {
		fields["category"] = *r.Category
	}
	return fields
}

// Create inserts a new task owned by the authenticated user
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	task := req.toModel(userID)
	if err := h.repo.Create(c.Request.Context(), &task); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to create task")
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// GetAll lists every task owned by the authenticated user
func (h *TaskHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.repo.GetAllByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch tasks")
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}

// GetByID fetches one task scoped to the authenticated user
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.repo.GetByID(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to fetch task")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// Update applies a partial update to a task owned by the authenticated user
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		respondError(c, http.StatusBadRequest, "At least one field must be provided for update")
		return
	}

	task, err := h.repo.Update(c.Request.Context(), userID, taskID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to update task")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// Delete removes a task owned by the authenticated user
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	err := h.repo.Delete(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, "Task not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	respondSuccess(c, http.StatusOK, nil)
}

// BulkCreate inserts an ordered batch of tasks in one atomic statement
func (h *TaskHandler) BulkCreate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid tasks data")
		return
	}

	tasks := make([]model.Task, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		tasks = append(tasks, t.toModel(userID))
	}

	created, err := h.repo.CreateBatch(c.Request.Context(), tasks)
	if err != nil {
		if errors.Is(err, repository.ErrEmptyBatch) {
			respondError(c, http.StatusBadRequest, "Invalid tasks data")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to create tasks")
		return
	}

	respondSuccess(c, http.StatusCreated, gin.H{"tasks": created})
}

func taskIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid task ID")
		return 0, false
	}
	return id, true
}
