package alertlog

import "testing"

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		sslMode string
		want    string
	}{
		{sslMode: "", want: "app:secret@tcp(db:3306)/alerts?parseTime=true"},
		{sslMode: "disable", want: "app:secret@tcp(db:3306)/alerts?parseTime=true&tls=false"},
		{sslMode: "require", want: "app:secret@tcp(db:3306)/alerts?parseTime=true&tls=true"},
	}
	for _, tt := range tests {
		got := mysqlDSN(ConnectionConfig{User: "app", Password: "secret", Host: "db", Port: 3306, Database: "alerts", SSLMode: tt.sslMode})
		if got != tt.want {
			t.Fatalf("sslMode %q: unexpected dsn %s", tt.sslMode, got)
		}
	}
}

func TestPostgresDSNDefaultsSSLMode(t *testing.T) {
	got := postgresDSN(ConnectionConfig{User: "app", Password: "secret", Host: "db", Port: 5432, Database: "alerts"})
	want := "host=db port=5432 user=app password=secret dbname=alerts sslmode=disable"
	if got != want {
		t.Fatalf("unexpected dsn: %s", got)
	}
}

func TestMSSQLDSNEscapesCredentials(t *testing.T) {
	got := mssqlDSN(ConnectionConfig{User: "sa", Password: "p@ss word", Host: "db", Port: 1433, Database: "alerts", SSLMode: "disable"})
	want := "sqlserver://sa:p%40ss+word@db:1433?database=alerts&encrypt=disable"
	if got != want {
		t.Fatalf("unexpected dsn: %s", got)
	}
}

func TestDialectStatements(t *testing.T) {
	tests := []struct {
		name   string
		d      dialect
		table  string
		quoted string
		insert string
	}{
		{name: "sqlite", d: sqliteDialect, table: "predictions", quoted: "\"predictions\"", insert: "INSERT INTO \"predictions\" (full_message) VALUES (?)"},
		{name: "mysql", d: mysqlDialect, table: "predictions", quoted: "`predictions`", insert: "INSERT INTO `predictions` (full_message) VALUES (?)"},
		{name: "postgres", d: postgresDialect, table: "public.predictions", quoted: "\"public\".\"predictions\"", insert: "INSERT INTO \"public\".\"predictions\" (full_message) VALUES ($1) RETURNING id"},
		{name: "mssql", d: mssqlDialect, table: "dbo.predictions", quoted: "[dbo].[predictions]", insert: "INSERT INTO [dbo].[predictions] (full_message) OUTPUT INSERTED.id VALUES (@p1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoted, _, err := quoteQualified(tt.table, tt.d.maxSegments, tt.d.quote)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quoted != tt.quoted {
				t.Fatalf("unexpected quoted table: %s", quoted)
			}
			if got := tt.d.insert(quoted); got != tt.insert {
				t.Fatalf("unexpected insert: %s", got)
			}
			reset := tt.d.reset(quoted)
			if len(reset) != 2 || reset[0] != "DROP TABLE IF EXISTS "+quoted {
				t.Fatalf("unexpected reset statements: %#v", reset)
			}
		})
	}
}
