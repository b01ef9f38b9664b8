package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"sorteos-api/cliparse"
	"sorteos-api/middleware"
	"sorteos-api/models"
	"sorteos-api/registry"
	"sorteos-api/reports"
)

type RaffleHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRaffleHandler(db *sql.DB, cfg cliparse.Config) *RaffleHandler {
	return &RaffleHandler{db: db, cfg: cfg}
}

// Create handles POST /api/raffles (organizer only)
func (h *RaffleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRaffleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	raffle, err := registry.CreateRaffle(h.db, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("raffle created", "raffle_id", raffle.ID, "name", raffle.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateRaffleResponse{
		Message: "Sorteo creado exitosamente",
		Raffle:  *raffle,
	})
}

// Update handles PATCH /api/raffles/{raffleId} (organizer only)
func (h *RaffleHandler) Update(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	var req models.UpdateRaffleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	raffle, err := registry.UpdateRaffle(h.db, raffleID, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("raffle updated", "raffle_id", raffle.ID)

	middleware.JSONResponse(w, http.StatusOK, raffle)
}

// SetState handles POST /api/raffles/{raffleId}/state (organizer only)
func (h *RaffleHandler) SetState(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	var req models.SetRaffleStateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := registry.SetState(h.db, raffleID, req.State); err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("raffle state changed", "raffle_id", raffleID, "estado", req.State)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Estado del sorteo actualizado",
		"estado":  req.State,
	})
}

// List handles GET /api/raffles?estado=activo
func (h *RaffleHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := registry.ListByState(h.db, r.URL.Query().Get("estado"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// Get handles GET /api/raffles/{raffleId}
func (h *RaffleHandler) Get(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	raffle, err := registry.GetByID(h.db, raffleID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, raffle)
}

// Summary handles GET /api/raffles/{raffleId}/summary
func (h *RaffleHandler) Summary(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	summary, err := reports.RaffleSummary(h.db, raffleID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, summary)
}
