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
	"sorteos-api/reports"
)

type PaymentHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier *notify.Notifier
}

func NewPaymentHandler(db *sql.DB, cfg cliparse.Config, notifier *notify.Notifier) *PaymentHandler {
	return &PaymentHandler{db: db, cfg: cfg, notifier: notifier}
}

// PayOnline handles POST /api/raffles/{raffleId}/payments/online (authenticated)
func (h *PaymentHandler) PayOnline(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}
	claims, _ := identity.FromContext(r.Context())

	var req models.PayOnlineRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	payment, tickets, err := ledger.PayOnline(h.db, raffleID, claims.UserID, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("online payment registered",
		"raffle_id", raffleID,
		"user_id", claims.UserID,
		"payment_id", payment.ID,
		"tickets", len(tickets),
	)

	h.notifyPayment(raffleID, claims.Name, "pago en línea", payment.Amount, tickets)

	middleware.JSONResponse(w, http.StatusCreated, models.PaymentResponse{
		Message: "Pago registrado exitosamente",
		Payment: *payment,
		Tickets: tickets,
	})
}

// RegisterTransfer handles POST /api/raffles/{raffleId}/payments/transfer (authenticated)
func (h *PaymentHandler) RegisterTransfer(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}
	claims, _ := identity.FromContext(r.Context())

	var req models.RegisterTransferRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	payment, tickets, err := ledger.RegisterTransfer(h.db, raffleID, claims.UserID, req)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	slog.Info("transfer registered",
		"raffle_id", raffleID,
		"user_id", claims.UserID,
		"payment_id", payment.ID,
		"tickets", len(tickets),
	)

	h.notifyPayment(raffleID, claims.Name, "transferencia", payment.Amount, tickets)

	middleware.JSONResponse(w, http.StatusCreated, models.PaymentResponse{
		Message: "Transferencia registrada; pendiente de confirmación",
		Payment: *payment,
		Tickets: tickets,
	})
}

// ListForRaffle handles GET /api/raffles/{raffleId}/payments (admin key)
func (h *PaymentHandler) ListForRaffle(w http.ResponseWriter, r *http.Request) {
	raffleID := r.PathValue("raffleId")
	if raffleID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "raffleId is required")
		return
	}

	payments, err := reports.PaymentsForRaffle(h.db, raffleID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, payments)
}

// Detail handles GET /api/payments/{paymentId} (admin key)
func (h *PaymentHandler) Detail(w http.ResponseWriter, r *http.Request) {
	paymentID := r.PathValue("paymentId")
	if paymentID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "paymentId is required")
		return
	}

	detail, err := reports.PaymentDetail(h.db, paymentID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

func (h *PaymentHandler) notifyPayment(raffleID, userName, kind string, amount float64, tickets []models.Ticket) {
	raffle, err := registry.GetByID(h.db, raffleID)
	if err != nil {
		return
	}
	h.notifier.PaymentRegistered(raffle.Name, userName, kind, amount, ticketNumbers(tickets))
}
