package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Haider077/CallingJournal/internal/clients/ai"
	"github.com/Haider077/CallingJournal/internal/domain/chat"
	"github.com/Haider077/CallingJournal/internal/http/response"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
	"github.com/Haider077/CallingJournal/internal/services"
)

type ChatHandler struct {
	log         *logger.Logger
	chatService services.ChatService
}

func NewChatHandler(log *logger.Logger, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		log:         log.With("handler", "ChatHandler"),
		chatService: chatService,
	}
}

type createSessionRequest struct {
	Title string `json:"title"`
}

func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	// An absent or empty body is fine; the session title then defaults.
	_ = c.ShouldBindJSON(&req)
	s, err := h.chatService.CreateSession(c.Request.Context(), req.Title)
	if err != nil {
		respondChatError(c, err)
		return
	}
	response.RespondOK(c, s)
}

func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions, err := h.chatService.ListSessions(c.Request.Context())
	if err != nil {
		respondChatError(c, err)
		return
	}
	if sessions == nil {
		sessions = []*chat.Session{}
	}
	response.RespondOK(c, sessions)
}

func (h *ChatHandler) GetSession(c *gin.Context) {
	id, err := sessionIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	s, err := h.chatService.GetSession(c.Request.Context(), id)
	if err != nil {
		respondChatError(c, err)
		return
	}
	response.RespondOK(c, s)
}

type renameSessionRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *ChatHandler) RenameSession(c *gin.Context) {
	id, err := sessionIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req renameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s, err := h.chatService.RenameSession(c.Request.Context(), id, req.Title)
	if err != nil {
		respondChatError(c, err)
		return
	}
	response.RespondOK(c, s)
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	id, err := sessionIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	if err := h.chatService.DeleteSession(c.Request.Context(), id); err != nil {
		respondChatError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "success"})
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	id, err := sessionIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	offset, limit := paginationParams(c)
	messages, err := h.chatService.ListMessages(c.Request.Context(), id, offset, limit)
	if err != nil {
		respondChatError(c, err)
		return
	}
	if messages == nil {
		messages = []*chat.Message{}
	}
	response.RespondOK(c, messages)
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
	Context string `json:"context"`
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	id, err := sessionIDParam(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_session_id", err)
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	msg, err := h.chatService.SendMessage(c.Request.Context(), id, req.Content, req.Context)
	if err != nil {
		respondChatError(c, err)
		return
	}
	response.RespondOK(c, msg)
}

func sessionIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session id %q: %w", c.Param("session_id"), errs.ErrInvalidArgument)
	}
	return id, nil
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
	case errors.Is(err, errs.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrUnauthorized)
	case errors.Is(err, errs.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, ai.ErrNotConfigured):
		response.RespondError(c, http.StatusServiceUnavailable, "ai_not_configured", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
