package api

import (
	"net/http"

	"github.com/chadwickbureau/retrosheet/internal/core"
	"github.com/chadwickbureau/retrosheet/internal/repository"
)

// RetrosheetRoutes exposes read access to games ingested through the
// play-by-play event-file pipeline.
type RetrosheetRoutes struct {
	repo *repository.RetrosheetContextRepository
}

func NewRetrosheetRoutes(repo *repository.RetrosheetContextRepository) *RetrosheetRoutes {
	return &RetrosheetRoutes{repo: repo}
}

func (rr *RetrosheetRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/events/games/{id}", rr.handleGetGame)
	mux.HandleFunc("GET /v1/events/games/{id}/events", rr.handleListEvents)
}

// handleGetGame godoc
// @Summary Get an event-ingested game
// @Description Get the summary row for a game loaded through the event-file ingest pipeline
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Retrosheet game ID"
// @Success 200 {object} repository.RetrosheetGameSummary
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/games/{id} [get]
func (rr *RetrosheetRoutes) handleGetGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	summary, err := rr.repo.GetGameSummary(ctx, id)
	if err != nil {
		if core.IsNotFound(err) {
			writeNotFound(w, "game")
			return
		}
		writeInternalServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleListEvents godoc
// @Summary List a game's events
// @Description List every play decoded for a game loaded through the event-file ingest pipeline, in event order
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Retrosheet game ID"
// @Success 200 {object} []repository.RetrosheetEventRow
// @Failure 500 {object} ErrorResponse
// @Router /events/games/{id}/events [get]
func (rr *RetrosheetRoutes) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	events, err := rr.repo.ListEvents(ctx, id)
	if err != nil {
		writeInternalServerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
