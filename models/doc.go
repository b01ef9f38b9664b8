/*
Package models defines request, response, and domain types for the API.

JSON field names keep the Spanish wire vocabulary of the existing clients
(numeroBoleto, precioBoleto, claveRastreo); Go field names are English.

# Request Types

Types for parsing incoming JSON:

  - CreateRaffleRequest: full raffle definition
  - UpdateRaffleRequest: sparse update, nil means "leave as is"
  - SetRaffleStateRequest: estado
  - ReserveTicketsRequest / ReleaseTicketsRequest: numerosBoletos
  - PayOnlineRequest: numerosBoletos, claveRastreo, monto
  - RegisterTransferRequest: numerosBoletos, voucher, monto

# Response Types

  - CreateRaffleResponse: message, raffle
  - ReserveTicketsResponse: reservedTickets plus failedToReserve
  - ReleaseTicketsResponse: released count
  - PaymentResponse: payment and its tickets
  - ErrorResponse: error, message, optional failedToReserve

# Domain Types

  - Raffle / RaffleListItem: campaign record and its list projection
  - Ticket: one claimed number in one raffle
  - Payment: funds received or expected for a set of tickets
  - User: display-name mirror of the identity service
  - RaffleSummary: counts by state and derived amounts
  - PaymentDetail: payment joined with tickets, user and raffle columns

# Constants

Raffle states:

	RaffleActive   = "activo"
	RaffleInactive = "inactivo"
	RaffleEnded    = "finalizado"

Ticket states:

	TicketReserved  = "APARTADO"
	TicketPurchased = "COMPRADO"

Payment types and states:

	PaymentTransfer = "TRANSFERENCIA"
	PaymentOnline   = "LINEA"

	PaymentPending   = "PENDIENTE"
	PaymentCompleted = "COMPLETADO"
	PaymentFailed    = "FALLIDO"
*/
package models
