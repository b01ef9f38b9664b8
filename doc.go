/*
Package main provides the entry point for the sorteos API server.

Sorteos is a raffle service: organizers create campaigns selling numbered
tickets, participants reserve numbers against a per-user limit and pay
online or by bank transfer, and administrators reconcile reservations
against payments.

# Starting the Server

The server reads configuration from a .env file, environment variables or
CLI flags:

	DATABASE_URL=postgres://... JWT_SECRET=... ADMIN_KEY=... go run main.go

Or with flags:

	go run main.go -p 8080 -d "postgres://..." -jwt-secret ... -admin-key ...

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - JWT_SECRET (-jwt-secret): shared secret of the identity service
  - ADMIN_KEY (-admin-key): value expected in the X-Admin-Key header

Optional settings:

  - PORT (-p): server port (default: 8080)
  - DATABASE_TYPE (-t): "postgres" (default) or "sqlite"
  - TELEGRAM_TOKEN / TELEGRAM_CHAT_ID: admin notifications

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (raffles, tickets, payments, participants)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, error mapping
  - models: Request/response and domain types
  - identity: JWT claims parsing and auth middleware
  - registry: Raffle campaign records and lifecycle
  - ledger: Ticket reservation and payment reconciliation
  - reports: Read-only projections
  - notify: Telegram admin notifications
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
