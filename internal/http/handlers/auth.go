package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Haider077/CallingJournal/internal/http/response"
	"github.com/Haider077/CallingJournal/internal/pkg/errs"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
	"github.com/Haider077/CallingJournal/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		log:         log.With("handler", "AuthHandler"),
		authService: authService,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	u, err := h.authService.RegisterUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrConflict):
			response.RespondError(c, http.StatusBadRequest, "email_taken", err)
		case errors.Is(err, errs.ErrInvalidArgument):
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "internal", err)
		}
		return
	}
	response.RespondOK(c, u)
}

// loginRequest accepts the OAuth2 password-grant form fields and a JSON
// equivalent; "username" carries the email in both shapes.
type loginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	token, err := h.authService.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", errs.ErrUnauthorized)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	response.RespondOK(c, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
