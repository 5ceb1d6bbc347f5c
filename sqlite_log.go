// file: sqlite_log.go
package alertlog

import (
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const DefaultSQLitePath = "predictions.db"

type SQLiteLog struct {
	*baseLog
}

var sqliteDialect = dialect{
	name:        "sqlite",
	maxSegments: 1,
	quote:       func(s string) string { return "\"" + s + "\"" },
	reset: func(table string) []string {
		return []string{
			"DROP TABLE IF EXISTS " + table,
			"CREATE TABLE " + table + " (id INTEGER PRIMARY KEY AUTOINCREMENT, full_message TEXT)",
		}
	},
	insert: func(table string) string {
		return "INSERT INTO " + table + " (full_message) VALUES (?)"
	},
}

func newSQLiteLog(cfg ConnectionConfig) (*SQLiteLog, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		path = DefaultSQLitePath
	}
	cfg.Path = path
	db, err := openDatabase("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite alert log: %w", err)
	}
	// one writer; the file is only ever touched by this process
	db.SetMaxOpenConns(1)
	base, err := newBaseLog(cfg, db, sqliteDialect)
	if err != nil {
		return nil, err
	}
	return &SQLiteLog{base}, nil
}

func sqliteDSN(path string) string {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}
