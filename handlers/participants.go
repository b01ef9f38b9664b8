package handlers

import (
	"database/sql"
	"net/http"

	"sorteos-api/cliparse"
	"sorteos-api/identity"
	"sorteos-api/middleware"
	"sorteos-api/reports"
)

type ParticipantHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewParticipantHandler(db *sql.DB, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{db: db, cfg: cfg}
}

// MyRaffles handles GET /api/participants/my-raffles (authenticated)
func (h *ParticipantHandler) MyRaffles(w http.ResponseWriter, r *http.Request) {
	claims, _ := identity.FromContext(r.Context())

	items, err := reports.ParticipantRaffles(h.db, claims.UserID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}
