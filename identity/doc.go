/*
Package identity validates tokens minted by the external identity service
and guards routes by role.

The service itself never issues tokens. It trusts JWTs signed with the
shared secret and carrying the claims id, rol and nombre. NewToken exists
for tests and local tooling only.

# Middleware

	mux.HandleFunc("POST /api/raffles/{raffleId}/tickets",
		identity.WithUser(cfg.JWTSecret, handler))

WithUser rejects missing or invalid Bearer tokens with 401 and stores the
claims on the request context for FromContext. RequireOrganizer runs
inside WithUser and rejects non-organizer roles with 403.
RequireAdminKey compares the X-Admin-Key header against the configured
admin key; it does not need a JWT.
*/
package identity
