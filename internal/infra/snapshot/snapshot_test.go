package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"emissiondesk/internal/infra/persistence/memory"
	"emissiondesk/internal/seed"
)

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dump.db")
	w, err := Open(ctx, DriverSQLite, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	if w.Driver() != DriverSQLite {
		t.Fatalf("driver = %s", w.Driver())
	}
	want := seed.Snapshot()
	if err := w.Write(ctx, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := w.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Countries) != len(want.Countries) || len(got.Companies) != len(want.Companies) ||
		len(got.Reports) != len(want.Reports) || len(got.Notifications) != len(want.Notifications) ||
		len(got.Users) != len(want.Users) {
		t.Fatalf("round trip mismatch: got %+v", got)
	}
	if got.Companies[0].Subsidiaries[0].Emissions[0] != want.Companies[0].Subsidiaries[0].Emissions[0] {
		t.Fatalf("nested emissions lost")
	}
	if !got.Users[0].JoinDate.Equal(want.Users[0].JoinDate) {
		t.Fatalf("join date lost: %v vs %v", got.Users[0].JoinDate, want.Users[0].JoinDate)
	}

	// A second write replaces buckets instead of appending.
	if err := w.Write(ctx, memory.Snapshot{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = w.Read(ctx)
	if err != nil {
		t.Fatalf("read after overwrite: %v", err)
	}
	if len(got.Companies) != 0 || len(got.Users) != 0 {
		t.Fatalf("expected empty buckets, got %+v", got)
	}
	var rows int
	if err := w.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM state`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != len(Buckets()) {
		t.Fatalf("expected %d rows, got %d", len(Buckets()), rows)
	}
}

func TestDumpFromStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dump.db")
	if err := Dump(ctx, seed.NewStore(), "", path); err != nil {
		t.Fatalf("dump: %v", err)
	}
	w, err := Open(ctx, DriverSQLite, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = w.Close() }()
	got, err := w.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Companies) != len(seed.Snapshot().Companies) {
		t.Fatalf("expected seeded companies, got %d", len(got.Companies))
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "x"); err == nil || !strings.Contains(err.Error(), "mysql") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestOpenPostgresUsesPgxDriver(t *testing.T) {
	var gotDriver, gotDSN string
	boom := errors.New("no server")
	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return nil, boom
	}
	t.Cleanup(func() { sqlOpen = orig })

	_, err := Open(context.Background(), DriverPostgres, "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected open error, got %v", err)
	}
	if gotDriver != "pgx" || gotDSN != defaultPostgresDSN {
		t.Fatalf("opened %s %s", gotDriver, gotDSN)
	}
}

func TestBind(t *testing.T) {
	q := `INSERT INTO state(bucket, payload) VALUES(?, ?)`
	if got := dialects[DriverSQLite].bind(q); got != q {
		t.Fatalf("sqlite bind changed query: %s", got)
	}
	if got := dialects[DriverPostgres].bind(q); got != `INSERT INTO state(bucket, payload) VALUES($1, $2)` {
		t.Fatalf("postgres bind = %s", got)
	}
}

func TestBucketsOrder(t *testing.T) {
	got := strings.Join(Buckets(), ",")
	if got != "countries,companies,reports,notifications,users" {
		t.Fatalf("buckets = %s", got)
	}
}
