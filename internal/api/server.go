// Package api provides HTTP handlers for the Retrosheet event-file API.
//
// @title Retrosheet Events API
// @description.markdown
// @version 1.0
// @BasePath /v1
//
// @contact.name API Support
// @contact.url https://github.com/chadwickbureau/retrosheet
//
// @license.name MPL-2.0
// @license.url https://opensource.org/license/mpl-2-0
//
// @tag.name events
// @tag.description Play-by-play event-file ingest data
package api

import (
	"database/sql"
	_ "expvar"
	"net/http"

	"github.com/chadwickbureau/retrosheet/internal/cache"
	"github.com/chadwickbureau/retrosheet/internal/echo"
	"github.com/chadwickbureau/retrosheet/internal/repository"
)

type Server struct {
	mux *http.ServeMux
}

// NewServer wires the event-ingest repository into the one route group this
// repo exposes and returns a ready-to-serve Server.
func NewServer(db *sql.DB, cacheClient *cache.Client) *Server {
	echo.Info("Initializing repositories...")

	retrosheetEventsRepo := repository.NewRetrosheetContextRepository(db, cacheClient)

	echo.Info("Registering routes...")

	return newServer(
		NewRetrosheetRoutes(retrosheetEventsRepo),
	)
}

// newServer wires all registrars into one mux.
func newServer(registrars ...Registrar) *Server {
	mux := http.NewServeMux()

	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	// Health check endpoint
	// @Summary Health check
	// @Description Check if the API server is running
	// @Tags health
	// @Accept json
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Router /health [get]
	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	})

	mux.Handle("GET /debug/vars", http.DefaultServeMux)
	return &Server{mux: mux}
}

// Implement http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
