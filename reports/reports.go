// Package reports serves the read-only projections: raffle summaries,
// participant history and payment listings. Nothing here mutates state.
package reports

import (
	"database/sql"
	"errors"

	"sorteos-api/apperr"
	"sorteos-api/models"
	"sorteos-api/registry"
)

// RaffleSummary aggregates ticket counts and derived amounts for one raffle.
// Collected and pending amounts are counts times the ticket price; available
// is floored at zero so an over-sold raffle never reports negative capacity.
func RaffleSummary(conn *sql.DB, raffleID string) (*models.RaffleSummary, error) {
	raffle, err := registry.GetByID(conn, raffleID)
	if err != nil {
		return nil, err
	}

	var purchased, reserved int
	err = conn.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN estado = $1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN estado = $2 THEN 1 ELSE 0 END), 0)
		FROM ticket WHERE raffle_id = $3`,
		models.TicketPurchased, models.TicketReserved, raffleID,
	).Scan(&purchased, &reserved)
	if err != nil {
		return nil, err
	}

	available := raffle.MaxTickets - purchased - reserved
	if available < 0 {
		available = 0
	}

	return &models.RaffleSummary{
		RaffleID:        raffle.ID,
		Name:            raffle.Name,
		MaxTickets:      raffle.MaxTickets,
		TicketPrice:     raffle.TicketPrice,
		Purchased:       purchased,
		Reserved:        reserved,
		Available:       available,
		AmountCollected: float64(purchased) * raffle.TicketPrice,
		AmountPending:   float64(reserved) * raffle.TicketPrice,
	}, nil
}

// ParticipantRaffles lists the raffles where the user holds at least one
// ticket, deduplicated, newest first.
func ParticipantRaffles(conn *sql.DB, userID string) ([]models.RaffleListItem, error) {
	rows, err := conn.Query(`
		SELECT r.id, r.nombre, r.premio, r.estado, r.precio_boleto, r.url_imagen
		FROM raffle r
		JOIN ticket t ON t.raffle_id = r.id
		WHERE t.user_id = $1
		GROUP BY r.id, r.nombre, r.premio, r.estado, r.precio_boleto,
			r.url_imagen, r.fecha_creacion
		ORDER BY r.fecha_creacion DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.RaffleListItem{}
	for rows.Next() {
		var item models.RaffleListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Prize, &item.State,
			&item.TicketPrice, &item.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// PaymentsForRaffle lists every payment attached to tickets of a raffle,
// newest first.
func PaymentsForRaffle(conn *sql.DB, raffleID string) ([]models.Payment, error) {
	rows, err := conn.Query(`
		SELECT DISTINCT p.id, p.tipo, p.estado, p.monto, p.voucher,
			p.clave_rastreo, p.fecha_creacion
		FROM payment p
		JOIN ticket t ON t.payment_id = p.id
		WHERE t.raffle_id = $1
		ORDER BY p.fecha_creacion DESC`, raffleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(&payment.ID, &payment.Type, &payment.State,
			&payment.Amount, &payment.Voucher, &payment.TrackingKey,
			&payment.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// PaymentDetail joins one payment with its tickets, the paying user and the
// raffle's display columns.
func PaymentDetail(conn *sql.DB, paymentID string) (*models.PaymentDetail, error) {
	var detail models.PaymentDetail
	err := conn.QueryRow(`
		SELECT id, tipo, estado, monto, voucher, clave_rastreo, fecha_creacion
		FROM payment WHERE id = $1`, paymentID).Scan(
		&detail.Payment.ID, &detail.Payment.Type, &detail.Payment.State,
		&detail.Payment.Amount, &detail.Payment.Voucher,
		&detail.Payment.TrackingKey, &detail.Payment.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Pago no encontrado")
	}
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(`
		SELECT id, raffle_id, user_id, numero_boleto, estado, payment_id
		FROM ticket WHERE payment_id = $1 ORDER BY numero_boleto`, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	detail.Tickets = []models.Ticket{}
	for rows.Next() {
		var ticket models.Ticket
		if err := rows.Scan(&ticket.ID, &ticket.RaffleID, &ticket.UserID,
			&ticket.Number, &ticket.State, &ticket.PaymentID); err != nil {
			return nil, err
		}
		detail.Tickets = append(detail.Tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(detail.Tickets) > 0 {
		first := detail.Tickets[0]

		err = conn.QueryRow(`SELECT id, nombre FROM usuario WHERE id = $1`,
			first.UserID).Scan(&detail.User.ID, &detail.User.Name)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if errors.Is(err, sql.ErrNoRows) {
			detail.User = models.User{ID: first.UserID}
		}

		err = conn.QueryRow(`SELECT nombre, precio_boleto FROM raffle WHERE id = $1`,
			first.RaffleID).Scan(&detail.RaffleName, &detail.TicketPrice)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	return &detail, nil
}
