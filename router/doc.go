/*
Package router defines HTTP routes for the sorteos API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, notifier)

# Endpoints

Health:

	GET /health

Raffle management (organizer, requires JWT with rol=sorteador):

	POST  /api/raffles                  - Create raffle
	PATCH /api/raffles/{raffleId}       - Sparse update
	POST  /api/raffles/{raffleId}/state - Change lifecycle state

Raffle reads (public):

	GET /api/raffles?estado=activo        - Filtered summary list
	GET /api/raffles/{raffleId}           - Full raffle
	GET /api/raffles/{raffleId}/summary   - Counts and amounts
	GET /api/raffles/{raffleId}/tickets   - All live tickets

Ticket operations (user, requires JWT):

	POST /api/raffles/{raffleId}/tickets             - Reserve numbers
	GET  /api/raffles/{raffleId}/my-tickets          - Own tickets
	GET  /api/raffles/{raffleId}/outstanding-tickets - Still owed

Administration (requires X-Admin-Key):

	DELETE /api/raffles/{raffleId}/tickets          - Release reservations
	GET    /api/raffles/{raffleId}/reserved-tickets - Awaiting confirmation
	GET    /api/raffles/{raffleId}/payments         - Payments per raffle
	GET    /api/payments/{paymentId}                - Payment detail

Payments (user, requires JWT):

	POST /api/raffles/{raffleId}/payments/online   - Completed online payment
	POST /api/raffles/{raffleId}/payments/transfer - Pending bank transfer

Participant history (user, requires JWT):

	GET /api/participants/my-raffles

# Handler Initialization

The router creates handler instances with dependency injection:

	raffleHandler := handlers.NewRaffleHandler(db, cfg)
	ticketHandler := handlers.NewTicketHandler(db, cfg, notifier)
	paymentHandler := handlers.NewPaymentHandler(db, cfg, notifier)
	participantHandler := handlers.NewParticipantHandler(db, cfg)

Auth wrappers (user, organizer, admin) compose identity middleware with
request logging per route group.
*/
package router
