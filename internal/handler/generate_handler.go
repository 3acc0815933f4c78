package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskman/internal/gemini"
)

type GenerateHandler struct {
	generator gemini.TaskGenerator
}

func NewGenerateHandler(generator gemini.TaskGenerator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

type GenerateTasksRequest struct {
	Topic string `json:"topic" binding:"required,min=1,max=255"`
}

// GenerateTasks returns five suggested task titles for a topic. The titles
// are not persisted here; the client submits them through the bulk create
// endpoint once the user confirms.
func (h *GenerateHandler) GenerateTasks(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	tasks, err := h.generator.GenerateTasks(c.Request.Context(), req.Topic)
	if err != nil {
		if errors.Is(err, gemini.ErrNotEnoughTasks) {
			respondError(c, http.StatusInternalServerError, "failed to generate enough tasks")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to generate tasks")
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"tasks": tasks})
}
