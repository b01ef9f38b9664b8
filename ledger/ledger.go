package ledger

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"sorteos-api/apperr"
	"sorteos-api/models"
	"sorteos-api/registry"
)

const ticketColumns = `id, raffle_id, user_id, numero_boleto, estado, payment_id`

// Reserve claims ticket numbers for a user. Partial success is the normal
// contract: numbers already taken come back in the rejected list while the
// free ones are reserved, in the same call.
//
// The per-user limit applies to the whole batch: if granting every requested
// number would cross the raffle's limit, nothing is reserved.
func Reserve(conn *sql.DB, raffleID, userID, userName string, numbers []string) ([]models.Ticket, []string, error) {
	if err := validateNumbers(numbers); err != nil {
		return nil, nil, err
	}

	raffle, err := registry.GetByID(conn, raffleID)
	if err != nil {
		return nil, nil, err
	}
	if raffle.State != models.RaffleActive {
		return nil, nil, apperr.New(apperr.Conflict, "El sorteo no está activo")
	}

	// Deterministic insert order below means overlapping batches always
	// lock ticket rows in the same sequence and cannot deadlock each other.
	numbers = append([]string(nil), numbers...)
	sort.Strings(numbers)

	tx, err := conn.Begin()
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	// Updates the display-name mirror, and doubles as the per-user
	// serialization point: the upsert holds the user's row lock until
	// commit, so a concurrent reservation by the same user blocks here
	// and the limit count below always sees the earlier transaction's
	// rows. Must stay ahead of the COUNT.
	_, err = tx.Exec(`
		INSERT INTO usuario (id, nombre) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET nombre = excluded.nombre`,
		userID, userName)
	if err != nil {
		return nil, nil, err
	}

	var existingCount int
	err = tx.QueryRow(`
		SELECT COUNT(*) FROM ticket WHERE raffle_id = $1 AND user_id = $2`,
		raffleID, userID).Scan(&existingCount)
	if err != nil {
		return nil, nil, err
	}
	if existingCount+len(numbers) > raffle.UserLimit {
		return nil, nil, apperr.Newf(apperr.LimitExceeded,
			"Límite de boletos por usuario excedido (máximo %d)", raffle.UserLimit)
	}

	// First pass: numbers that already have a live ticket in this raffle.
	taken := map[string]bool{}
	query := fmt.Sprintf(`
		SELECT numero_boleto FROM ticket
		WHERE raffle_id = $1 AND numero_boleto IN (%s)`, placeholders(2, len(numbers)))
	rows, err := tx.Query(query, withRaffleID(raffleID, numbers)...)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			rows.Close()
			return nil, nil, err
		}
		taken[number] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	// Second pass: conditional insert per remaining number. A concurrent
	// reservation that won the race surfaces as zero rows affected on the
	// ON CONFLICT DO NOTHING insert and joins the rejected list.
	reserved := []models.Ticket{}
	rejected := []string{}
	for _, number := range numbers {
		if taken[number] {
			rejected = append(rejected, number)
			continue
		}

		ticket := models.Ticket{
			ID:       uuid.NewString(),
			RaffleID: raffleID,
			UserID:   userID,
			Number:   number,
			State:    models.TicketReserved,
		}
		result, err := tx.Exec(`
			INSERT INTO ticket (id, raffle_id, user_id, numero_boleto, estado)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (raffle_id, numero_boleto) DO NOTHING`,
			ticket.ID, ticket.RaffleID, ticket.UserID, ticket.Number, ticket.State)
		if err != nil {
			return nil, nil, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, nil, err
		}
		if affected == 0 {
			rejected = append(rejected, number)
			continue
		}
		reserved = append(reserved, ticket)
	}

	if len(reserved) == 0 {
		return nil, nil, apperr.WithRejected(apperr.Conflict,
			"Todos los números de boletos ya están reservados", rejected)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return reserved, rejected, nil
}

// Release deletes reserved tickets so their numbers become free again.
// Purchased tickets and tickets attached to a pending or completed payment
// are skipped silently; only the deleted count is reported. A count of zero
// is NotFound.
func Release(conn *sql.DB, raffleID string, numbers []string) (int, error) {
	if err := validateNumbers(numbers); err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`
		DELETE FROM ticket
		WHERE raffle_id = $1 AND numero_boleto IN (%s) AND estado = $%d
		AND (payment_id IS NULL
			OR payment_id IN (SELECT id FROM payment WHERE estado = $%d))`,
		placeholders(2, len(numbers)), len(numbers)+2, len(numbers)+3)

	args := withRaffleID(raffleID, numbers)
	args = append(args, models.TicketReserved, models.PaymentFailed)

	result, err := conn.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	released, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if released == 0 {
		return 0, apperr.New(apperr.NotFound, "No hay boletos apartados que liberar")
	}
	return int(released), nil
}

// TicketsForRaffle returns every live ticket of a raffle.
func TicketsForRaffle(conn *sql.DB, raffleID string) ([]models.Ticket, error) {
	rows, err := conn.Query(`
		SELECT `+ticketColumns+` FROM ticket
		WHERE raffle_id = $1 ORDER BY numero_boleto`, raffleID)
	if err != nil {
		return nil, err
	}
	return scanTickets(rows)
}

// TicketsForUser returns a user's tickets in one raffle.
func TicketsForUser(conn *sql.DB, raffleID, userID string) ([]models.Ticket, error) {
	rows, err := conn.Query(`
		SELECT `+ticketColumns+` FROM ticket
		WHERE raffle_id = $1 AND user_id = $2 ORDER BY numero_boleto`,
		raffleID, userID)
	if err != nil {
		return nil, err
	}
	return scanTickets(rows)
}

func validateNumbers(numbers []string) error {
	if len(numbers) == 0 {
		return apperr.New(apperr.InvalidInput, "No se proporcionaron números de boletos")
	}
	seen := map[string]bool{}
	for _, number := range numbers {
		if strings.TrimSpace(number) == "" {
			return apperr.New(apperr.InvalidInput, "Número de boleto vacío")
		}
		if seen[number] {
			return apperr.Newf(apperr.InvalidInput, "Número de boleto duplicado: %q", number)
		}
		seen[number] = true
	}
	return nil
}

// placeholders renders "$start, $start+1, ..." for IN clauses. Ordinal
// placeholders work on both lib/pq and modernc sqlite.
func placeholders(start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func withRaffleID(raffleID string, numbers []string) []interface{} {
	args := make([]interface{}, 0, len(numbers)+1)
	args = append(args, raffleID)
	for _, number := range numbers {
		args = append(args, number)
	}
	return args
}

func scanTickets(rows *sql.Rows) ([]models.Ticket, error) {
	defer rows.Close()
	tickets := []models.Ticket{}
	for rows.Next() {
		var ticket models.Ticket
		if err := rows.Scan(&ticket.ID, &ticket.RaffleID, &ticket.UserID,
			&ticket.Number, &ticket.State, &ticket.PaymentID); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}
