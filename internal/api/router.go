package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/zonehunt/internal/api/handler"
	"github.com/mcoot/zonehunt/internal/api/middleware"
	"github.com/mcoot/zonehunt/internal/engine"
	"github.com/mcoot/zonehunt/internal/realtime"
	"github.com/mcoot/zonehunt/internal/services/auth"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	AuthService *auth.Service
	Engine      *engine.Engine
	Realtime    *realtime.Handler
	DirectorKey string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	healthHandler := handler.NewHealthHandler(cfg.Engine)
	accountHandler := handler.NewAccountHandler(cfg.AuthService)
	directorHandler := handler.NewDirectorHandler(cfg.Engine)

	// Create middleware
	directorMiddleware := middleware.Director(cfg.DirectorKey)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// Websocket endpoint sits outside the logging wrapper so the connection can be hijacked
	r.HandleFunc("/ws", cfg.Realtime.ServeWS)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	// Account routes (no auth required)
	api.HandleFunc("/accounts", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/verify", accountHandler.Verify).Methods(http.MethodPost)

	// Director routes
	director := api.PathPrefix("/director").Subrouter()
	director.Use(directorMiddleware)
	director.HandleFunc("/state", directorHandler.State).Methods(http.MethodGet)
	director.HandleFunc("/events", cfg.Realtime.ServeEvents).Methods(http.MethodGet)
	director.HandleFunc("/game/start", directorHandler.Start).Methods(http.MethodPost)
	director.HandleFunc("/game/reset", directorHandler.Reset).Methods(http.MethodPost)
	director.HandleFunc("/zone", directorHandler.SetZone).Methods(http.MethodPut)
	director.HandleFunc("/messages", directorHandler.Message).Methods(http.MethodPost)
	director.HandleFunc("/hints", directorHandler.Hint).Methods(http.MethodPost)
	director.HandleFunc("/teams/auto-pair", directorHandler.AutoPair).Methods(http.MethodPost)
	director.HandleFunc("/players/{id}", directorHandler.Kick).Methods(http.MethodDelete)
	director.HandleFunc("/players/{id}/team", directorHandler.Move).Methods(http.MethodPut)
	director.HandleFunc("/players/{id}/seeker", directorHandler.SetSeeker).Methods(http.MethodPost)

	return r
}
