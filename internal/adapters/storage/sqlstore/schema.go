package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

const TableName = "pet_logs"

func createTableSQL(d Dialect) string {
	id := "id SERIAL PRIMARY KEY"
	if d == SQLite {
		id = "id INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return `
		CREATE TABLE IF NOT EXISTS pet_logs (
			` + id + `,
			timestamp TIMESTAMP NOT NULL,
			user_id VARCHAR(50) NOT NULL,
			action_type VARCHAR(20) NOT NULL
		)
	`
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_pet_logs_user_ts ON pet_logs (user_id, timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_pet_logs_action_ts ON pet_logs (action_type, timestamp)`,
}

// EnsureSchema crea la tabla e índices si no existen. Es idempotente: se llama en cada arranque.
func EnsureSchema(ctx context.Context, db *sql.DB, d Dialect) error {
	if db == nil {
		return fmt.Errorf("ensure schema: nil db")
	}

	if _, err := db.ExecContext(ctx, createTableSQL(d)); err != nil {
		return fmt.Errorf("create table %s: %w", TableName, err)
	}
	for _, stmt := range indexStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
