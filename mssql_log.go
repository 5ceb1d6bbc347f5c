// file: mssql_log.go
package alertlog

import (
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
)

type MSSQLLog struct {
	*baseLog
}

var mssqlDialect = dialect{
	name:        "mssql",
	maxSegments: 2,
	quote:       func(s string) string { return "[" + s + "]" },
	reset: func(table string) []string {
		return []string{
			"DROP TABLE IF EXISTS " + table,
			"CREATE TABLE " + table + " (id BIGINT IDENTITY(1,1) PRIMARY KEY, full_message NVARCHAR(MAX))",
		}
	},
	insert: func(table string) string {
		return "INSERT INTO " + table + " (full_message) OUTPUT INSERTED.id VALUES (@p1)"
	},
	insertReturns: true,
}

func newMSSQLLog(cfg ConnectionConfig) (*MSSQLLog, error) {
	if cfg.Port == 0 {
		cfg.Port = 1433
	}
	db, err := openDatabase("sqlserver", mssqlDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mssql alert log: %w", err)
	}
	base, err := newBaseLog(cfg, db, mssqlDialect)
	if err != nil {
		return nil, err
	}
	return &MSSQLLog{base}, nil
}

func mssqlDSN(cfg ConnectionConfig) string {
	user := url.QueryEscape(cfg.User)
	pass := url.QueryEscape(cfg.Password)
	sslMode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))
	encrypt := "true"
	if sslMode == "disable" {
		encrypt = "disable"
	}
	return fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s&encrypt=%s", user, pass, cfg.Host, cfg.Port, url.QueryEscape(cfg.Database), encrypt)
}
