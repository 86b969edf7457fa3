package audit

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is stored in PRAGMA user_version.
const SchemaVersion = 1

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS audit_log (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		repo       TEXT NOT NULL DEFAULT '',
		action     TEXT NOT NULL DEFAULT '',
		outcome    TEXT NOT NULL,
		detail     TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_log_created_at ON audit_log(created_at)`,
}

func runMigrations(db *sql.DB) error {
	var dbVersion int
	if err := db.QueryRow("PRAGMA user_version").Scan(&dbVersion); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dbVersion > SchemaVersion {
		return fmt.Errorf("audit database schema version %d is newer than supported (max %d)", dbVersion, SchemaVersion)
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	if dbVersion < SchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	return nil
}
