package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL sticks to the common subset of PostgreSQL and SQLite so that both
// drivers can run it unchanged.
const schema = `
-- Raffles
CREATE TABLE IF NOT EXISTS raffle (
    id TEXT PRIMARY KEY,
    nombre TEXT NOT NULL UNIQUE,
    descripcion TEXT NOT NULL,
    premio TEXT NOT NULL,
    estado TEXT NOT NULL DEFAULT 'activo' CHECK (estado IN ('activo', 'inactivo', 'finalizado')),
    cantidad_maxima_boletos INTEGER NOT NULL,
    precio_boleto NUMERIC(10,2) NOT NULL,
    limite_boletos_por_usuario INTEGER NOT NULL DEFAULT 10,
    fecha_inicial_venta TIMESTAMP NOT NULL,
    fecha_final_venta TIMESTAMP NOT NULL,
    fecha_realizacion TIMESTAMP NOT NULL,
    fecha_creacion TIMESTAMP NOT NULL,
    url_imagen TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_raffle_estado ON raffle(estado);

-- Display-name mirror of the external identity service
CREATE TABLE IF NOT EXISTS usuario (
    id TEXT PRIMARY KEY,
    nombre TEXT NOT NULL
);

-- Payments
CREATE TABLE IF NOT EXISTS payment (
    id TEXT PRIMARY KEY,
    tipo TEXT NOT NULL CHECK (tipo IN ('TRANSFERENCIA', 'LINEA')),
    estado TEXT NOT NULL DEFAULT 'PENDIENTE' CHECK (estado IN ('PENDIENTE', 'COMPLETADO', 'FALLIDO')),
    monto NUMERIC(10,2) NOT NULL,
    voucher TEXT,
    clave_rastreo TEXT,
    fecha_creacion TIMESTAMP NOT NULL
);

-- Tickets. Released tickets are deleted, so the plain composite UNIQUE
-- covers the "one live ticket per number per raffle" invariant.
CREATE TABLE IF NOT EXISTS ticket (
    id TEXT PRIMARY KEY,
    raffle_id TEXT NOT NULL REFERENCES raffle(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    numero_boleto TEXT NOT NULL,
    estado TEXT NOT NULL DEFAULT 'APARTADO' CHECK (estado IN ('APARTADO', 'COMPRADO')),
    payment_id TEXT REFERENCES payment(id),
    UNIQUE (raffle_id, numero_boleto)
);

CREATE INDEX IF NOT EXISTS idx_ticket_raffle ON ticket(raffle_id);
CREATE INDEX IF NOT EXISTS idx_ticket_user ON ticket(raffle_id, user_id);
CREATE INDEX IF NOT EXISTS idx_ticket_payment ON ticket(payment_id);
`
