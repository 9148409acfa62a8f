package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Haider077/CallingJournal/internal/http/response"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type HealthHandler struct {
	log *logger.Logger
}

func NewHealthHandler(log *logger.Logger) *HealthHandler {
	return &HealthHandler{log: log.With("handler", "HealthHandler")}
}

func (h *HealthHandler) Health(c *gin.Context) {
	response.RespondOK(c, gin.H{"status": "healthy"})
}

func (h *HealthHandler) Root(c *gin.Context) {
	response.RespondOK(c, gin.H{"message": "Welcome to the Journal API"})
}
