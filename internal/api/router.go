// Package api exposes the moderation service over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/udisondev/moderation/internal/admin"
)

const uuidPattern = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger  *slog.Logger
	Service *admin.Service
	Keys    *KeyRing
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	adminHandler := NewAdminHandler(cfg.Service)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(Recovery(cfg.Logger))
	api.Use(Logging(cfg.Logger))

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Id routes go first so a UUID is never taken for a name.
	players := api.PathPrefix("/players").Subrouter()
	players.Use(Auth(cfg.Keys))
	players.HandleFunc("/{id:"+uuidPattern+"}", adminHandler.GetPlayer).Methods(http.MethodGet)
	players.HandleFunc("/{id:"+uuidPattern+"}/admin/{action}", adminHandler.Apply).Methods(http.MethodPost)
	players.HandleFunc("/{name}", adminHandler.GetPlayer).Methods(http.MethodGet)
	players.HandleFunc("/{name}/admin/{action}", adminHandler.Apply).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
