package sqlstore

import (
	"strings"
	"testing"
)

func TestParseURI(t *testing.T) {
	cases := []struct {
		uri    string
		driver string
		dsn    string
	}{
		{"postgres://u:p@db:5432/books?sslmode=disable", DriverPostgres, "postgres://u:p@db:5432/books?sslmode=disable"},
		{"postgresql://db/books", DriverPostgres, "postgresql://db/books"},
		{"sqlite:///books.db", DriverSQLite, "books.db?_foreign_keys=on&_busy_timeout=5000"},
		{"sqlite:////var/lib/books.db", DriverSQLite, "/var/lib/books.db?_foreign_keys=on&_busy_timeout=5000"},
		{"sqlite://:memory:", DriverSQLite, ":memory:?_foreign_keys=on&_busy_timeout=5000"},
	}
	for _, tc := range cases {
		driver, dsn, err := ParseURI(tc.uri)
		if err != nil {
			t.Fatalf("ParseURI(%q): %v", tc.uri, err)
		}
		if driver != tc.driver || dsn != tc.dsn {
			t.Fatalf("ParseURI(%q) = %q, %q; want %q, %q", tc.uri, driver, dsn, tc.driver, tc.dsn)
		}
	}
}

func TestParseURI_MySQL(t *testing.T) {
	driver, dsn, err := ParseURI("mysql://shop:secret@db/books")
	if err != nil {
		t.Fatalf("ParseURI: %v", err)
	}
	if driver != DriverMySQL {
		t.Fatalf("expected mysql driver, got %q", driver)
	}
	if !strings.HasPrefix(dsn, "shop:secret@tcp(db:3306)/books?") || !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}

func TestParseURI_Invalid(t *testing.T) {
	for _, uri := range []string{"books.db", "redis://localhost", "sqlite://"} {
		if _, _, err := ParseURI(uri); err == nil {
			t.Fatalf("expected error for %q", uri)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\n CREATE INDEX i ON a (x);\n")
	if len(got) != 2 || got[1] != "CREATE INDEX i ON a (x)" {
		t.Fatalf("unexpected statements %q", got)
	}
}
