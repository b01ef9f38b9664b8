package models

import "time"

// Raffle lifecycle states
const (
	RaffleActive   = "activo"
	RaffleInactive = "inactivo"
	RaffleEnded    = "finalizado"
)

// Ticket states
const (
	TicketReserved  = "APARTADO"
	TicketPurchased = "COMPRADO"
)

// Payment types
const (
	PaymentTransfer = "TRANSFERENCIA"
	PaymentOnline   = "LINEA"
)

// Payment states
const (
	PaymentPending   = "PENDIENTE"
	PaymentCompleted = "COMPLETADO"
	PaymentFailed    = "FALLIDO"
)

// ValidRaffleState reports whether s is one of the three raffle states.
func ValidRaffleState(s string) bool {
	switch s {
	case RaffleActive, RaffleInactive, RaffleEnded:
		return true
	}
	return false
}

// Request types

type CreateRaffleRequest struct {
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Prize       string    `json:"premio"`
	MaxTickets  int       `json:"cantidadMaximaBoletos"`
	TicketPrice float64   `json:"precioBoleto"`
	UserLimit   int       `json:"limiteBoletosPorUsuario"`
	SaleStart   time.Time `json:"fechaInicialVentaBoletos"`
	SaleEnd     time.Time `json:"fechaFinalVentaBoletos"`
	DrawDate    time.Time `json:"fechaRealizacion"`
	ImageURL    string    `json:"urlImagen"`
}

// UpdateRaffleRequest carries a sparse set of fields; nil means "leave as is".
type UpdateRaffleRequest struct {
	Name        *string    `json:"nombre"`
	Description *string    `json:"descripcion"`
	Prize       *string    `json:"premio"`
	MaxTickets  *int       `json:"cantidadMaximaBoletos"`
	TicketPrice *float64   `json:"precioBoleto"`
	UserLimit   *int       `json:"limiteBoletosPorUsuario"`
	SaleStart   *time.Time `json:"fechaInicialVentaBoletos"`
	SaleEnd     *time.Time `json:"fechaFinalVentaBoletos"`
	DrawDate    *time.Time `json:"fechaRealizacion"`
	ImageURL    *string    `json:"urlImagen"`
}

type SetRaffleStateRequest struct {
	State string `json:"estado"`
}

type ReserveTicketsRequest struct {
	Numbers []string `json:"numerosBoletos"`
}

type ReleaseTicketsRequest struct {
	Numbers []string `json:"numerosBoletos"`
}

type PayOnlineRequest struct {
	Numbers     []string `json:"numerosBoletos"`
	TrackingKey string   `json:"claveRastreo"`
	Amount      float64  `json:"monto"`
}

type RegisterTransferRequest struct {
	Numbers []string `json:"numerosBoletos"`
	Voucher string   `json:"voucher"`
	Amount  float64  `json:"monto"`
}

// Response types

type CreateRaffleResponse struct {
	Message string `json:"message"`
	Raffle  Raffle `json:"raffle"`
}

type ReserveTicketsResponse struct {
	Message  string   `json:"message"`
	Reserved []Ticket `json:"reservedTickets"`
	Rejected []string `json:"failedToReserve"`
}

type ReleaseTicketsResponse struct {
	Released int `json:"released"`
}

type PaymentResponse struct {
	Message string   `json:"message"`
	Payment Payment  `json:"payment"`
	Tickets []Ticket `json:"tickets"`
}

type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Rejected []string `json:"failedToReserve,omitempty"`
}

// Domain types

type Raffle struct {
	ID          string    `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Prize       string    `json:"premio"`
	State       string    `json:"estado"`
	MaxTickets  int       `json:"cantidadMaximaBoletos"`
	TicketPrice float64   `json:"precioBoleto"`
	UserLimit   int       `json:"limiteBoletosPorUsuario"`
	SaleStart   time.Time `json:"fechaInicialVentaBoletos"`
	SaleEnd     time.Time `json:"fechaFinalVentaBoletos"`
	DrawDate    time.Time `json:"fechaRealizacion"`
	CreatedAt   time.Time `json:"fechaCreacion"`
	ImageURL    string    `json:"urlImagen"`
}

// RaffleListItem is the summary projection used by the state-filtered lists
// and the participant history (id + display columns only).
type RaffleListItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"nombre"`
	Prize       string  `json:"premio"`
	State       string  `json:"estado"`
	TicketPrice float64 `json:"precioBoleto"`
	ImageURL    string  `json:"urlImagen"`
}

type Ticket struct {
	ID        string  `json:"id"`
	RaffleID  string  `json:"raffleId"`
	UserID    string  `json:"userId"`
	Number    string  `json:"numeroBoleto"`
	State     string  `json:"estado"`
	PaymentID *string `json:"paymentId,omitempty"`
}

type Payment struct {
	ID          string    `json:"id"`
	Type        string    `json:"tipo"`
	State       string    `json:"estado"`
	Amount      float64   `json:"monto"`
	Voucher     *string   `json:"voucher,omitempty"`
	TrackingKey *string   `json:"claveRastreo,omitempty"`
	CreatedAt   time.Time `json:"fechaCreacion"`
}

// User is the display-name mirror of the external identity service.
type User struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// RaffleSummary aggregates ticket counts and amounts for one raffle.
type RaffleSummary struct {
	RaffleID        string  `json:"raffleId"`
	Name            string  `json:"nombre"`
	MaxTickets      int     `json:"cantidadMaximaBoletos"`
	TicketPrice     float64 `json:"precioBoleto"`
	Purchased       int     `json:"boletosComprados"`
	Reserved        int     `json:"boletosApartados"`
	Available       int     `json:"boletosDisponibles"`
	AmountCollected float64 `json:"montoRecaudado"`
	AmountPending   float64 `json:"montoPendiente"`
}

// PaymentDetail joins a payment with its tickets, the paying user and the
// raffle's display columns.
type PaymentDetail struct {
	Payment     Payment  `json:"payment"`
	Tickets     []Ticket `json:"tickets"`
	User        User     `json:"user"`
	RaffleName  string   `json:"nombreSorteo"`
	TicketPrice float64  `json:"precioBoleto"`
}
