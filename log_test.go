package alertlog

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestLog(t *testing.T) AlertLog {
	t.Helper()
	l, err := New(ConnectionConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "predictions.db")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	if err := l.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return l
}

func TestQuoteQualified(t *testing.T) {
	quoted, parts, err := quoteQualified("public.predictions", 2, func(s string) string { return "\"" + s + "\"" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quoted != "\"public\".\"predictions\"" {
		t.Fatalf("unexpected quoted value: %s", quoted)
	}
	if !reflect.DeepEqual(parts, []string{"public", "predictions"}) {
		t.Fatalf("unexpected parts: %#v", parts)
	}
}

func TestQuoteQualifiedTooManySegments(t *testing.T) {
	_, _, err := quoteQualified("a.b.c", 2, func(s string) string { return s })
	if err == nil {
		t.Fatalf("expected error for too many segments")
	}
}

func TestNewRejectsInvalidTable(t *testing.T) {
	tests := []struct {
		name  string
		table string
	}{
		{name: "injection", table: "predictions; DROP TABLE x"},
		{name: "qualified sqlite", table: "main.predictions"},
		{name: "empty segment", table: "a..b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(ConnectionConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "x.db"), Table: tt.table})
			if err == nil {
				t.Fatalf("expected error for table %q", tt.table)
			}
		})
	}
}

func TestNewUnsupportedType(t *testing.T) {
	if _, err := New(ConnectionConfig{Type: "oracle"}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestInitializeIsDestructive(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t)
	for i := 0; i < 2; i++ {
		if _, err := l.Append(ctx, "alert"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	for round := 0; round < 2; round++ {
		if err := l.Initialize(ctx); err != nil {
			t.Fatalf("initialize round %d: %v", round, err)
		}
		count, err := l.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected empty table after initialize, got %d rows", count)
		}
	}
}

func TestAppendAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t)
	first, err := l.Append(ctx, "first")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	second, err := l.Append(ctx, "second")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("unexpected ids: %d %d", first, second)
	}
	count, err := l.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected count: %d", count)
	}
}

func TestAppendKeepsMessageVerbatim(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t)
	msg := "🚨 Attention!\nline two 😊"
	id, err := l.Append(ctx, msg)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	var stored string
	db := l.(*SQLiteLog).db
	if err := db.QueryRowContext(ctx, "SELECT full_message FROM predictions WHERE id = ?", id).Scan(&stored); err != nil {
		t.Fatalf("select: %v", err)
	}
	if stored != msg {
		t.Fatalf("unexpected stored message: %q", stored)
	}
}

func TestAppendWithoutInitializeFails(t *testing.T) {
	l, err := New(ConnectionConfig{Path: filepath.Join(t.TempDir(), "fresh.db")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()
	if _, err := l.Append(context.Background(), "alert"); err == nil {
		t.Fatalf("expected error appending to a missing table")
	}
}

func TestCustomTableName(t *testing.T) {
	ctx := context.Background()
	l, err := New(ConnectionConfig{Path: filepath.Join(t.TempDir(), "x.db"), Table: "ev_alerts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer l.Close()
	if err := l.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, err := l.Append(ctx, "alert"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if l.(*SQLiteLog).cfg.Table != "ev_alerts" {
		t.Fatalf("unexpected table: %s", l.(*SQLiteLog).cfg.Table)
	}
}
