package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"sorteos-api/cliparse"
)

// Open connects to the configured database. DatabaseType selects the
// driver: "postgres" (lib/pq) for deployments, "sqlite" (modernc) for
// local development.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}
