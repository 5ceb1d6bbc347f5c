// file: factory.go
package alertlog

import (
	"database/sql"
	"fmt"
	"strings"
)

// New opens the alert log described by cfg. An empty type selects the local
// sqlite file.
func New(cfg ConnectionConfig) (AlertLog, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "", "sqlite", "sqlite3":
		return newSQLiteLog(cfg)
	case "mysql":
		return newMySQLLog(cfg)
	case "postgres", "postgresql":
		return newPostgresLog(cfg, "postgres")
	case "pgx":
		return newPostgresLog(cfg, "pgx")
	case "mssql", "sqlserver":
		return newMSSQLLog(cfg)
	default:
		return nil, fmt.Errorf("unsupported alert log type %q", cfg.Type)
	}
}

func openDatabase(driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}
