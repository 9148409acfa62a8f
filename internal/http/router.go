package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Haider077/CallingJournal/internal/http/handlers"
	"github.com/Haider077/CallingJournal/internal/http/middleware"
	"github.com/Haider077/CallingJournal/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *middleware.AuthMiddleware
	HealthHandler  *handlers.HealthHandler
	AuthHandler    *handlers.AuthHandler
	JournalHandler *handlers.JournalHandler
	ChatHandler    *handlers.ChatHandler
	ServiceName    string
	TracingEnabled bool
}

// NewRouter wires every route the service exposes. Handlers left nil in the
// config are simply not mounted, which keeps partial wiring usable in tests.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(middleware.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(middleware.RequestLogger(cfg.Log))
	}

	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/health", cfg.HealthHandler.Health)
	}
	if cfg.AuthHandler != nil {
		r.POST("/register", cfg.AuthHandler.Register)
		r.POST("/token", cfg.AuthHandler.Login)
	}

	if cfg.AuthMiddleware == nil {
		return r
	}
	authed := r.Group("/", cfg.AuthMiddleware.RequireAuth())

	if cfg.JournalHandler != nil {
		entries := authed.Group("/entries")
		entries.POST("/", cfg.JournalHandler.CreateEntry)
		entries.GET("/", cfg.JournalHandler.ListEntries)
		entries.GET("/:date", cfg.JournalHandler.GetEntry)
		entries.PUT("/:date", cfg.JournalHandler.UpdateEntry)
		entries.DELETE("/:date", cfg.JournalHandler.DeleteEntry)
	}

	if cfg.ChatHandler != nil {
		sessions := authed.Group("/chat/sessions")
		sessions.POST("", cfg.ChatHandler.CreateSession)
		sessions.GET("", cfg.ChatHandler.ListSessions)
		sessions.GET("/:session_id", cfg.ChatHandler.GetSession)
		sessions.PUT("/:session_id", cfg.ChatHandler.RenameSession)
		sessions.DELETE("/:session_id", cfg.ChatHandler.DeleteSession)
		sessions.POST("/:session_id/messages", cfg.ChatHandler.SendMessage)
		sessions.GET("/:session_id/messages", cfg.ChatHandler.ListMessages)
	}

	return r
}
