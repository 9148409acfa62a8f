package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Haider077/CallingJournal/internal/domain/journal"
	"github.com/Haider077/CallingJournal/internal/http/response"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
	"github.com/Haider077/CallingJournal/internal/services"
)

const dateLayout = "2006-01-02"

type JournalHandler struct {
	log            *logger.Logger
	journalService services.JournalService
}

func NewJournalHandler(log *logger.Logger, journalService services.JournalService) *JournalHandler {
	return &JournalHandler{
		log:            log.With("handler", "JournalHandler"),
		journalService: journalService,
	}
}

type createEntryRequest struct {
	Date      string  `json:"date" binding:"required"`
	Title     *string `json:"title"`
	Mood      *string `json:"mood"`
	Duration  *string `json:"duration"`
	Content   *string `json:"content"`
	IsStarred *bool   `json:"is_starred"`
	IsHidden  *bool   `json:"is_hidden"`
}

func (h *JournalHandler) CreateEntry(c *gin.Context) {
	var req createEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	date, err := parseEntryDate(req.Date)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	entry, err := h.journalService.CreateEntry(c.Request.Context(), services.CreateEntryInput{
		Date:      date,
		Title:     req.Title,
		Mood:      req.Mood,
		Duration:  req.Duration,
		Content:   req.Content,
		IsStarred: req.IsStarred,
		IsHidden:  req.IsHidden,
	})
	if err != nil {
		respondJournalError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

func (h *JournalHandler) ListEntries(c *gin.Context) {
	offset, limit := paginationParams(c)
	entries, err := h.journalService.ListEntries(c.Request.Context(), offset, limit)
	if err != nil {
		respondJournalError(c, err)
		return
	}
	if entries == nil {
		entries = []*journal.Entry{}
	}
	response.RespondOK(c, entries)
}

func (h *JournalHandler) GetEntry(c *gin.Context) {
	date, err := parseEntryDate(c.Param("date"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	entry, err := h.journalService.GetEntry(c.Request.Context(), date)
	if err != nil {
		respondJournalError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

func (h *JournalHandler) UpdateEntry(c *gin.Context) {
	date, err := parseEntryDate(c.Param("date"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	var upd journal.EntryUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	entry, err := h.journalService.UpdateEntry(c.Request.Context(), date, upd)
	if err != nil {
		respondJournalError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	date, err := parseEntryDate(c.Param("date"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}
	entry, err := h.journalService.DeleteEntry(c.Request.Context(), date)
	if err != nil {
		respondJournalError(c, err)
		return
	}
	response.RespondOK(c, entry)
}

func parseEntryDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", raw, errs.ErrInvalidArgument)
	}
	return t, nil
}

func respondJournalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "entry_not_found", err)
	case errors.Is(err, errs.ErrUnauthorized):
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errs.ErrUnauthorized)
	case errors.Is(err, errs.ErrInvalidArgument):
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, errs.ErrConflict):
		response.RespondError(c, http.StatusBadRequest, "conflict", err)
	default:
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
