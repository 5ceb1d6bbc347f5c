// file: postgres_log.go
package alertlog

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

type PostgresLog struct {
	*baseLog
}

var postgresDialect = dialect{
	name:        "postgres",
	maxSegments: 2,
	quote:       func(s string) string { return "\"" + s + "\"" },
	reset: func(table string) []string {
		return []string{
			"DROP TABLE IF EXISTS " + table,
			"CREATE TABLE " + table + " (id BIGSERIAL PRIMARY KEY, full_message TEXT)",
		}
	},
	insert: func(table string) string {
		return "INSERT INTO " + table + " (full_message) VALUES ($1) RETURNING id"
	},
	insertReturns: true,
}

// newPostgresLog opens the log through lib/pq ("postgres") or the pgx
// database/sql driver ("pgx"). Both accept the same key/value DSN.
func newPostgresLog(cfg ConnectionConfig, driverName string) (*PostgresLog, error) {
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	db, err := openDatabase(driverName, postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open %s alert log: %w", driverName, err)
	}
	base, err := newBaseLog(cfg, db, postgresDialect)
	if err != nil {
		return nil, err
	}
	return &PostgresLog{base}, nil
}

func postgresDSN(cfg ConnectionConfig) string {
	sslMode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslMode)
}
