// file: mysql_log.go
package alertlog

import (
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLLog struct {
	*baseLog
}

var mysqlDialect = dialect{
	name:        "mysql",
	maxSegments: 1,
	quote:       func(s string) string { return "`" + s + "`" },
	reset: func(table string) []string {
		return []string{
			"DROP TABLE IF EXISTS " + table,
			"CREATE TABLE " + table + " (id BIGINT AUTO_INCREMENT PRIMARY KEY, full_message TEXT)",
		}
	},
	insert: func(table string) string {
		return "INSERT INTO " + table + " (full_message) VALUES (?)"
	},
}

func newMySQLLog(cfg ConnectionConfig) (*MySQLLog, error) {
	if cfg.Port == 0 {
		cfg.Port = 3306
	}
	db, err := openDatabase("mysql", mysqlDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql alert log: %w", err)
	}
	base, err := newBaseLog(cfg, db, mysqlDialect)
	if err != nil {
		return nil, err
	}
	return &MySQLLog{base}, nil
}

func mysqlDSN(cfg ConnectionConfig) string {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	sslMode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))
	if sslMode == "disable" {
		dsn += "&tls=false"
	} else if sslMode != "" {
		dsn += "&tls=true"
	}
	return dsn
}
