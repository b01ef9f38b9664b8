package registry

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"sorteos-api/apperr"
	"sorteos-api/db"
	"sorteos-api/models"
)

const raffleColumns = `id, nombre, descripcion, premio, estado,
	cantidad_maxima_boletos, precio_boleto, limite_boletos_por_usuario,
	fecha_inicial_venta, fecha_final_venta, fecha_realizacion,
	fecha_creacion, url_imagen`

// CreateRaffle validates the request and inserts a new active raffle.
func CreateRaffle(conn *sql.DB, req models.CreateRaffleRequest) (*models.Raffle, error) {
	if req.Name == "" || req.Description == "" || req.Prize == "" {
		return nil, apperr.New(apperr.InvalidInput, "Faltan campos obligatorios del sorteo")
	}
	if req.MaxTickets <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "La cantidad máxima de boletos debe ser mayor a cero")
	}
	if req.TicketPrice <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "El precio del boleto debe ser mayor a cero")
	}
	if req.UserLimit <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "El límite de boletos por usuario debe ser mayor a cero")
	}

	now := time.Now().UTC()
	raffle := models.Raffle{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Prize:       req.Prize,
		State:       models.RaffleActive,
		MaxTickets:  req.MaxTickets,
		TicketPrice: req.TicketPrice,
		UserLimit:   req.UserLimit,
		SaleStart:   req.SaleStart,
		SaleEnd:     req.SaleEnd,
		DrawDate:    req.DrawDate,
		CreatedAt:   now,
		ImageURL:    req.ImageURL,
	}

	if err := validateDates(&raffle); err != nil {
		return nil, err
	}

	_, err := conn.Exec(`
		INSERT INTO raffle (id, nombre, descripcion, premio, estado,
			cantidad_maxima_boletos, precio_boleto, limite_boletos_por_usuario,
			fecha_inicial_venta, fecha_final_venta, fecha_realizacion,
			fecha_creacion, url_imagen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		raffle.ID, raffle.Name, raffle.Description, raffle.Prize, raffle.State,
		raffle.MaxTickets, raffle.TicketPrice, raffle.UserLimit,
		raffle.SaleStart, raffle.SaleEnd, raffle.DrawDate,
		raffle.CreatedAt, raffle.ImageURL,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Newf(apperr.Conflict, "Ya existe un sorteo con el nombre %q", req.Name)
		}
		return nil, err
	}

	return &raffle, nil
}

// UpdateRaffle applies a sparse update. Only non-nil fields change; the
// merged result is re-validated as a whole so a partial edit cannot leave
// the dates inconsistent.
func UpdateRaffle(conn *sql.DB, raffleID string, req models.UpdateRaffleRequest) (*models.Raffle, error) {
	raffle, err := GetByID(conn, raffleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		raffle.Name = *req.Name
	}
	if req.Description != nil && *req.Description != "" {
		raffle.Description = *req.Description
	}
	if req.Prize != nil && *req.Prize != "" {
		raffle.Prize = *req.Prize
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		raffle.ImageURL = *req.ImageURL
	}
	if req.MaxTickets != nil {
		if *req.MaxTickets <= 0 {
			return nil, apperr.New(apperr.InvalidInput, "La cantidad máxima de boletos debe ser mayor a cero")
		}
		raffle.MaxTickets = *req.MaxTickets
	}
	if req.TicketPrice != nil {
		if *req.TicketPrice <= 0 {
			return nil, apperr.New(apperr.InvalidInput, "El precio del boleto debe ser mayor a cero")
		}
		raffle.TicketPrice = *req.TicketPrice
	}
	if req.UserLimit != nil {
		if *req.UserLimit <= 0 {
			return nil, apperr.New(apperr.InvalidInput, "El límite de boletos por usuario debe ser mayor a cero")
		}
		raffle.UserLimit = *req.UserLimit
	}
	if req.SaleStart != nil {
		raffle.SaleStart = *req.SaleStart
	}
	if req.SaleEnd != nil {
		raffle.SaleEnd = *req.SaleEnd
	}
	if req.DrawDate != nil {
		raffle.DrawDate = *req.DrawDate
	}

	if err := validateDates(raffle); err != nil {
		return nil, err
	}

	_, err = conn.Exec(`
		UPDATE raffle SET nombre = $1, descripcion = $2, premio = $3,
			cantidad_maxima_boletos = $4, precio_boleto = $5,
			limite_boletos_por_usuario = $6, fecha_inicial_venta = $7,
			fecha_final_venta = $8, fecha_realizacion = $9, url_imagen = $10
		WHERE id = $11`,
		raffle.Name, raffle.Description, raffle.Prize,
		raffle.MaxTickets, raffle.TicketPrice, raffle.UserLimit,
		raffle.SaleStart, raffle.SaleEnd, raffle.DrawDate, raffle.ImageURL,
		raffle.ID,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Newf(apperr.Conflict, "Ya existe un sorteo con el nombre %q", raffle.Name)
		}
		return nil, err
	}

	return raffle, nil
}

// SetState moves the raffle to the given lifecycle state.
func SetState(conn *sql.DB, raffleID, state string) error {
	if !models.ValidRaffleState(state) {
		return apperr.Newf(apperr.InvalidInput, "Estado inválido: %q", state)
	}

	result, err := conn.Exec(`UPDATE raffle SET estado = $1 WHERE id = $2`, state, raffleID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.New(apperr.NotFound, "Sorteo no encontrado")
	}
	return nil
}

// GetByID fetches a single raffle with all its columns.
func GetByID(conn *sql.DB, raffleID string) (*models.Raffle, error) {
	var raffle models.Raffle
	err := conn.QueryRow(`SELECT `+raffleColumns+` FROM raffle WHERE id = $1`, raffleID).Scan(
		&raffle.ID, &raffle.Name, &raffle.Description, &raffle.Prize, &raffle.State,
		&raffle.MaxTickets, &raffle.TicketPrice, &raffle.UserLimit,
		&raffle.SaleStart, &raffle.SaleEnd, &raffle.DrawDate,
		&raffle.CreatedAt, &raffle.ImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "Sorteo no encontrado")
	}
	if err != nil {
		return nil, err
	}
	return &raffle, nil
}

// ListByState returns summary rows for every raffle in the given state,
// or all raffles when state is empty. Newest first.
func ListByState(conn *sql.DB, state string) ([]models.RaffleListItem, error) {
	if state != "" && !models.ValidRaffleState(state) {
		return nil, apperr.Newf(apperr.InvalidInput, "Estado inválido: %q", state)
	}

	query := `SELECT id, nombre, premio, estado, precio_boleto, url_imagen FROM raffle`
	args := []interface{}{}
	if state != "" {
		query += ` WHERE estado = $1`
		args = append(args, state)
	}
	query += ` ORDER BY fecha_creacion DESC`

	rows, err := conn.Query(query, args...)
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

// validateDates enforces the sale-window ordering on the full raffle view.
func validateDates(raffle *models.Raffle) error {
	if raffle.SaleStart.IsZero() || raffle.SaleEnd.IsZero() || raffle.DrawDate.IsZero() {
		return apperr.New(apperr.InvalidInput, "Faltan fechas del sorteo")
	}
	if !raffle.SaleStart.Before(raffle.SaleEnd) {
		return apperr.New(apperr.InvalidInput, "La fecha inicial de venta debe ser anterior a la fecha final")
	}
	if !raffle.SaleEnd.Before(raffle.DrawDate) {
		return apperr.New(apperr.InvalidInput, "La fecha final de venta debe ser anterior a la fecha de realización")
	}
	if raffle.SaleStart.Before(raffle.CreatedAt.Add(-time.Minute)) {
		return apperr.New(apperr.InvalidInput, "La fecha inicial de venta no puede ser anterior a la creación del sorteo")
	}
	return nil
}
