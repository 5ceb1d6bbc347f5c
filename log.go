// file: log.go
package alertlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const DefaultTable = "predictions"

// AlertLog is the append-only store of formatted alert messages.
type AlertLog interface {
	// Initialize drops and recreates the alert table. Prior rows are discarded.
	Initialize(ctx context.Context) error

	Append(ctx context.Context, message string) (int64, error)

	Count(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error

	Close() error
}

type ConnectionConfig struct {
	Type     string `json:"type" yaml:"type"` // sqlite | mysql | postgres | pgx | mssql
	Path     string `json:"path" yaml:"path"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	Database string `json:"database" yaml:"database"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`
	Table    string `json:"table" yaml:"table"`
}

// dialect carries the statements that differ between backends.
type dialect struct {
	name          string
	maxSegments   int
	quote         func(string) string
	reset         func(table string) []string
	insert        func(table string) string
	insertReturns bool
}

type baseLog struct {
	cfg     ConnectionConfig
	db      *sql.DB
	dialect dialect
	table   string
}

func newBaseLog(cfg ConnectionConfig, db *sql.DB, d dialect) (*baseLog, error) {
	name := strings.TrimSpace(cfg.Table)
	if name == "" {
		name = DefaultTable
	}
	quoted, _, err := quoteQualified(name, d.maxSegments, d.quote)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("invalid %s table: %w", d.name, err)
	}
	cfg.Table = name
	return &baseLog{cfg: cfg, db: db, dialect: d, table: quoted}, nil
}

func (b *baseLog) Initialize(ctx context.Context) error {
	for _, stmt := range b.dialect.reset(b.table) {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset %s alert table: %w", b.dialect.name, err)
		}
	}
	return nil
}

func (b *baseLog) Append(ctx context.Context, message string) (int64, error) {
	query := b.dialect.insert(b.table)
	if b.dialect.insertReturns {
		var id int64
		if err := b.db.QueryRowContext(ctx, query, message).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert %s alert: %w", b.dialect.name, err)
		}
		return id, nil
	}
	res, err := b.db.ExecContext(ctx, query, message)
	if err != nil {
		return 0, fmt.Errorf("insert %s alert: %w", b.dialect.name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read %s alert id: %w", b.dialect.name, err)
	}
	return id, nil
}

func (b *baseLog) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+b.table).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s alerts: %w", b.dialect.name, err)
	}
	return count, nil
}

func (b *baseLog) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", b.dialect.name, err)
	}
	return nil
}

func (b *baseLog) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

func splitIdentifier(ident string) ([]string, error) {
	trimmed := strings.TrimSpace(ident)
	if trimmed == "" {
		return nil, errors.New("identifier is empty")
	}
	parts := strings.Split(trimmed, ".")
	for _, part := range parts {
		if part == "" {
			return nil, errors.New("identifier contains empty segment")
		}
		if !identPattern.MatchString(part) {
			return nil, fmt.Errorf("identifier segment %q is invalid", part)
		}
	}
	return parts, nil
}

func quoteQualified(ident string, maxSegments int, quote func(string) string) (string, []string, error) {
	parts, err := splitIdentifier(ident)
	if err != nil {
		return "", nil, err
	}
	if maxSegments > 0 && len(parts) > maxSegments {
		return "", nil, fmt.Errorf("identifier %q has too many segments", ident)
	}
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = quote(part)
	}
	return strings.Join(quoted, "."), parts, nil
}
