/*
Package handlers implements the HTTP endpoints.

Each handler struct holds the database connection and configuration and is
registered in the router. Handlers validate path and body input, delegate
to registry, ledger or reports, and translate domain errors to HTTP
statuses via middleware.WriteError.

Authentication is layered on in the router: user endpoints run inside
identity.WithUser, organizer endpoints additionally inside
identity.RequireOrganizer, and administrative endpoints inside
identity.RequireAdminKey. Handlers that need the caller read the claims
from the request context.

Telegram notifications for reservations and payments are fire-and-forget;
a notification failure never fails the request.
*/
package handlers
