/*
Package db handles database connection and schema creation.

# Opening a Connection

Open selects the driver from the configuration:

	conn, err := db.Open(cfg) // postgres (lib/pq) or sqlite (modernc)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - raffle: Raffle campaign metadata and lifecycle state
  - usuario: Display-name mirror of the external identity service
  - payment: Payment records (TRANSFERENCIA/LINEA)
  - ticket: Live ticket claims, one row per (raffle, number)

# Relationships

	raffle 1──* ticket
	payment 1──* ticket
	usuario 1──* ticket (user_id, no FK; users live in the identity service)

The composite UNIQUE (raffle_id, numero_boleto) on ticket is the
double-sale guard: released tickets are deleted outright, so every
surviving row is a live claim and the constraint covers exactly the
"one live ticket per number" invariant. Concurrent inserts for the same
number resolve on this constraint instead of on application-level checks.
*/
package db
