package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"sorteos-api/cliparse"
	"sorteos-api/identity"
	"sorteos-api/ledger"
	"sorteos-api/middleware"
	"sorteos-api/models"
	"sorteos-api/notify"
	"sorteos-api/registry"
)

type TicketHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier *notify.Notifier
}

func NewTicketHandler(db *sql.DB, cfg cliparse.Config, notifier *notify.Notifier) *TicketHandler {
	return &TicketHandler{db: db, cfg: cfg, notifier: notifier}
}

// Reserve handles POST /api/raffles/{raffleId}/tickets (authenticated)
func (h *TicketHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}
	claims, _ := identity.FromContext(r.Context())

	var req models.ReserveTicketsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	reserved, rejected, err := ledger.Reserve(h.db, raffleID, claims.UserID, claims.Name, req.Numbers)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("tickets reserved",
		"raffle_id", raffleID,
		"user_id", claims.UserID,
		"reserved", len(reserved),
		"rejected", len(rejected),
	)

	if raffle, err := registry.GetByID(h.db, raffleID); err == nil {
		h.notifier.TicketsReserved(raffle.Name, claims.Name, ticketNumbers(reserved))
	}

	message := "Boletos apartados exitosamente"
	if len(rejected) > 0 {
		message = "Algunos boletos fueron apartados; otros ya estaban ocupados"
	}
	middleware.JSONResponse(w, http.StatusCreated, models.ReserveTicketsResponse{
		Message:  message,
		Reserved: reserved,
		Rejected: rejected,
	})
}

// Release handles DELETE /api/raffles/{raffleId}/tickets (admin key)
func (h *TicketHandler) Release(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	var req models.ReleaseTicketsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	released, err := ledger.Release(h.db, raffleID, req.Numbers)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("tickets released", "raffle_id", raffleID, "released", released)

	middleware.JSONResponse(w, http.StatusOK, models.ReleaseTicketsResponse{
		Released: released,
	})
}

// ListForRaffle handles GET /api/raffles/{raffleId}/tickets
func (h *TicketHandler) ListForRaffle(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	tickets, err := ledger.TicketsForRaffle(h.db, raffleID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tickets)
}

// MyTickets handles GET /api/raffles/{raffleId}/my-tickets (authenticated)
func (h *TicketHandler) MyTickets(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}
	claims, _ := identity.FromContext(r.Context())

	tickets, err := ledger.TicketsForUser(h.db, raffleID, claims.UserID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tickets)
}

// Outstanding handles GET /api/raffles/{raffleId}/outstanding-tickets (authenticated)
func (h *TicketHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}
	claims, _ := identity.FromContext(r.Context())

	tickets, err := ledger.OutstandingForUser(h.db, raffleID, claims.UserID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tickets)
}

// ReservedReport handles GET /api/raffles/{raffleId}/reserved-tickets (admin key)
func (h *TicketHandler) ReservedReport(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	tickets, err := ledger.ReservedAwaitingConfirmation(h.db, raffleID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tickets)
}

func ticketNumbers(tickets []models.Ticket) []string {
	numbers := make([]string, len(tickets))
	for i, ticket := range tickets {
		numbers[i] = ticket.Number
	}
	return numbers
}
