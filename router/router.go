package router

import (
	"database/sql"
	"net/http"

	"sorteos-api/cliparse"
	"sorteos-api/handlers"
	"sorteos-api/identity"
	"sorteos-api/middleware"
	"sorteos-api/notify"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, notifier *notify.Notifier) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	raffleHandler := handlers.NewRaffleHandler(db, cfg)
	ticketHandler := handlers.NewTicketHandler(db, cfg, notifier)
	paymentHandler := handlers.NewPaymentHandler(db, cfg, notifier)
	participantHandler := handlers.NewParticipantHandler(db, cfg)

	user := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(identity.WithUser(cfg.JWTSecret, h))
	}
	organizer := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(identity.WithUser(cfg.JWTSecret, identity.RequireOrganizer(h)))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(identity.RequireAdminKey(cfg.AdminKey, h))
	}
	public := middleware.WithLogging

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Raffle management (organizer operations)
	mux.HandleFunc("POST /api/raffles", organizer(raffleHandler.Create))
	mux.HandleFunc("PATCH /api/raffles/{raffleId}", organizer(raffleHandler.Update))
	mux.HandleFunc("POST /api/raffles/{raffleId}/state", organizer(raffleHandler.SetState))

	// Raffle reads (public)
	mux.HandleFunc("GET /api/raffles", public(raffleHandler.List))
	mux.HandleFunc("GET /api/raffles/{raffleId}", public(raffleHandler.Get))
	mux.HandleFunc("GET /api/raffles/{raffleId}/summary", public(raffleHandler.Summary))
	mux.HandleFunc("GET /api/raffles/{raffleId}/tickets", public(ticketHandler.ListForRaffle))

	// Ticket operations
	mux.HandleFunc("POST /api/raffles/{raffleId}/tickets", user(ticketHandler.Reserve))
	mux.HandleFunc("DELETE /api/raffles/{raffleId}/tickets", admin(ticketHandler.Release))
	mux.HandleFunc("GET /api/raffles/{raffleId}/my-tickets", user(ticketHandler.MyTickets))
	mux.HandleFunc("GET /api/raffles/{raffleId}/outstanding-tickets", user(ticketHandler.Outstanding))
	mux.HandleFunc("GET /api/raffles/{raffleId}/reserved-tickets", admin(ticketHandler.ReservedReport))

	// Payments
	mux.HandleFunc("POST /api/raffles/{raffleId}/payments/online", user(paymentHandler.PayOnline))
	mux.HandleFunc("POST /api/raffles/{raffleId}/payments/transfer", user(paymentHandler.RegisterTransfer))
	mux.HandleFunc("GET /api/raffles/{raffleId}/payments", admin(paymentHandler.ListForRaffle))
	mux.HandleFunc("GET /api/payments/{paymentId}", admin(paymentHandler.Detail))

	// Participant history
	mux.HandleFunc("GET /api/participants/my-raffles", user(participantHandler.MyRaffles))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("sorteos API v1"))
	})

	return mux
}
