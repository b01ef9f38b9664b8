package ledger

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"sorteos-api/apperr"
	"sorteos-api/models"
)

// PayOnline records a completed online payment for a set of tickets the
// caller has reserved, flipping them to purchased. The whole protocol runs
// in one transaction: either every requested ticket transitions and the
// payment row exists, or nothing changed.
func PayOnline(conn *sql.DB, raffleID, userID string, req models.PayOnlineRequest) (*models.Payment, []models.Ticket, error) {
	if err := validateNumbers(req.Numbers); err != nil {
		return nil, nil, err
	}
	if req.Amount <= 0 {
		return nil, nil, apperr.New(apperr.InvalidInput, "El monto debe ser mayor a cero")
	}
	if strings.TrimSpace(req.TrackingKey) == "" {
		return nil, nil, apperr.New(apperr.InvalidInput, "Falta la clave de rastreo")
	}

	tx, err := conn.Begin()
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if err := verifyReserved(tx, raffleID, userID, req.Numbers); err != nil {
		return nil, nil, err
	}

	payment := models.Payment{
		ID:          uuid.NewString(),
		Type:        models.PaymentOnline,
		State:       models.PaymentCompleted,
		Amount:      req.Amount,
		TrackingKey: &req.TrackingKey,
		CreatedAt:   time.Now().UTC(),
	}
	_, err = tx.Exec(`
		INSERT INTO payment (id, tipo, estado, monto, clave_rastreo, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		payment.ID, payment.Type, payment.State, payment.Amount,
		payment.TrackingKey, payment.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	// Conditional update with rowcount check: if a concurrent release or
	// purchase touched any of the tickets since verifyReserved, the count
	// comes up short and the whole transaction rolls back.
	query := fmt.Sprintf(`
		UPDATE ticket SET estado = $1, payment_id = $2
		WHERE raffle_id = $3 AND user_id = $4 AND estado = $5
		AND numero_boleto IN (%s)`, placeholders(6, len(req.Numbers)))
	args := []interface{}{models.TicketPurchased, payment.ID, raffleID, userID, models.TicketReserved}
	for _, number := range req.Numbers {
		args = append(args, number)
	}
	result, err := tx.Exec(query, args...)
	if err != nil {
		return nil, nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, nil, err
	}
	if int(affected) != len(req.Numbers) {
		return nil, nil, apperr.New(apperr.Conflict,
			"Algunos boletos no están apartados a tu nombre")
	}

	tickets, err := ticketsByPayment(tx, payment.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &payment, tickets, nil
}

// RegisterTransfer records a bank-transfer payment awaiting confirmation.
// The tickets get a payment reference but stay reserved; a transfer only
// counts as sold once confirmed out of band.
func RegisterTransfer(conn *sql.DB, raffleID, userID string, req models.RegisterTransferRequest) (*models.Payment, []models.Ticket, error) {
	if err := validateNumbers(req.Numbers); err != nil {
		return nil, nil, err
	}
	if req.Amount <= 0 {
		return nil, nil, apperr.New(apperr.InvalidInput, "El monto debe ser mayor a cero")
	}
	if strings.TrimSpace(req.Voucher) == "" {
		return nil, nil, apperr.New(apperr.InvalidInput, "Falta el comprobante de transferencia")
	}

	tx, err := conn.Begin()
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	if err := verifyReserved(tx, raffleID, userID, req.Numbers); err != nil {
		return nil, nil, err
	}

	payment := models.Payment{
		ID:        uuid.NewString(),
		Type:      models.PaymentTransfer,
		State:     models.PaymentPending,
		Amount:    req.Amount,
		Voucher:   &req.Voucher,
		CreatedAt: time.Now().UTC(),
	}
	_, err = tx.Exec(`
		INSERT INTO payment (id, tipo, estado, monto, voucher, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		payment.ID, payment.Type, payment.State, payment.Amount,
		payment.Voucher, payment.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	query := fmt.Sprintf(`
		UPDATE ticket SET payment_id = $1
		WHERE raffle_id = $2 AND user_id = $3 AND estado = $4
		AND numero_boleto IN (%s)`, placeholders(5, len(req.Numbers)))
	args := []interface{}{payment.ID, raffleID, userID, models.TicketReserved}
	for _, number := range req.Numbers {
		args = append(args, number)
	}
	result, err := tx.Exec(query, args...)
	if err != nil {
		return nil, nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, nil, err
	}
	if int(affected) != len(req.Numbers) {
		return nil, nil, apperr.New(apperr.Conflict,
			"Algunos boletos no están apartados a tu nombre")
	}

	tickets, err := ticketsByPayment(tx, payment.ID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &payment, tickets, nil
}

// OutstandingForUser lists a user's reserved tickets that still owe money:
// no payment attached, or the attached payment has not completed. This is
// the threshold shown to the paying user.
func OutstandingForUser(conn *sql.DB, raffleID, userID string) ([]models.Ticket, error) {
	rows, err := conn.Query(`
		SELECT t.id, t.raffle_id, t.user_id, t.numero_boleto, t.estado, t.payment_id
		FROM ticket t
		LEFT JOIN payment p ON t.payment_id = p.id
		WHERE t.raffle_id = $1 AND t.user_id = $2 AND t.estado = $3
		AND (t.payment_id IS NULL OR p.estado <> $4)
		ORDER BY t.numero_boleto`,
		raffleID, userID, models.TicketReserved, models.PaymentCompleted)
	if err != nil {
		return nil, err
	}
	return scanTickets(rows)
}

// ReservedAwaitingConfirmation lists every reserved ticket an administrator
// still needs to act on: no payment, or a payment that is not pending.
// A failed payment keeps the ticket on this report; a pending transfer
// hides it because confirmation is already underway.
//
// Deliberately a separate function from OutstandingForUser even though the
// shape matches. The thresholds encode different business rules.
func ReservedAwaitingConfirmation(conn *sql.DB, raffleID string) ([]models.Ticket, error) {
	rows, err := conn.Query(`
		SELECT t.id, t.raffle_id, t.user_id, t.numero_boleto, t.estado, t.payment_id
		FROM ticket t
		LEFT JOIN payment p ON t.payment_id = p.id
		WHERE t.raffle_id = $1 AND t.estado = $2
		AND (t.payment_id IS NULL OR p.estado <> $3)
		ORDER BY t.numero_boleto`,
		raffleID, models.TicketReserved, models.PaymentPending)
	if err != nil {
		return nil, err
	}
	return scanTickets(rows)
}

// verifyReserved checks that every requested number is a ticket reserved by
// this user in this raffle. Runs inside the payment transaction.
func verifyReserved(tx *sql.Tx, raffleID, userID string, numbers []string) error {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM ticket
		WHERE raffle_id = $1 AND user_id = $2 AND estado = $3
		AND numero_boleto IN (%s)`, placeholders(4, len(numbers)))
	args := []interface{}{raffleID, userID, models.TicketReserved}
	for _, number := range numbers {
		args = append(args, number)
	}

	var count int
	if err := tx.QueryRow(query, args...).Scan(&count); err != nil {
		return err
	}
	if count != len(numbers) {
		return apperr.New(apperr.Conflict, "Algunos boletos no están apartados a tu nombre")
	}
	return nil
}

func ticketsByPayment(tx *sql.Tx, paymentID string) ([]models.Ticket, error) {
	rows, err := tx.Query(`
		SELECT `+ticketColumns+` FROM ticket
		WHERE payment_id = $1 ORDER BY numero_boleto`, paymentID)
	if err != nil {
		return nil, err
	}
	return scanTickets(rows)
}
