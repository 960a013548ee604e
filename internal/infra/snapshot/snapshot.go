// Package snapshot dumps the in-memory dataset into a SQL database as one
// JSON payload per collection. The dump is an analysis artifact; the service
// never reloads from it.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"emissiondesk/internal/infra/persistence/memory"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	defaultSQLitePath  = "emissiondesk.db"
	defaultPostgresDSN = "postgres://localhost/emissiondesk?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

type dialect struct {
	sqlDriver   string
	payloadType string
	dollar      bool
}

var dialects = map[string]dialect{
	DriverSQLite:   {sqlDriver: "sqlite", payloadType: "TEXT"},
	DriverPostgres: {sqlDriver: "pgx", payloadType: "JSONB", dollar: true},
}

// bind rewrites ? placeholders to $n for dialects that need it.
func (d dialect) bind(query string) string {
	if !d.dollar {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Writer owns the database handle.
type Writer struct {
	db      *sql.DB
	dialect dialect
	driver  string
	mu      sync.Mutex
}

// Open connects to dsn with driver and ensures the state table exists. An
// empty dsn selects a local default.
func Open(ctx context.Context, driver, dsn string) (*Writer, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unknown snapshot driver %q", driver)
	}
	switch {
	case dsn == "" && driver == DriverSQLite:
		dsn = defaultSQLitePath
	case dsn == "":
		dsn = defaultPostgresDSN
	}
	if driver == DriverSQLite {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	}
	openMu.Lock()
	db, err := sqlOpen(d.sqlDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload %s NOT NULL
	)`, d.payloadType)
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Writer{db: db, dialect: d, driver: driver}, nil
}

// Driver returns the configured driver name.
func (w *Writer) Driver() string { return w.driver }

// Close releases the database handle.
func (w *Writer) Close() error { return w.db.Close() }

type bucket struct {
	name   string
	target any
}

func buckets(s *memory.Snapshot) []bucket {
	return []bucket{
		{"countries", &s.Countries},
		{"companies", &s.Companies},
		{"reports", &s.Reports},
		{"notifications", &s.Notifications},
		{"users", &s.Users},
	}
}

// Buckets lists the bucket names in write order.
func Buckets() []string {
	var s memory.Snapshot
	names := make([]string, 0, 5)
	for _, b := range buckets(&s) {
		names = append(names, b.name)
	}
	return names
}

// Write upserts every bucket of snap in one transaction.
func (w *Writer) Write(ctx context.Context, snap memory.Snapshot) (retErr error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	upsert := w.dialect.bind(`INSERT INTO state(bucket, payload) VALUES(?, ?)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`)
	for _, b := range buckets(&snap) {
		data, err := json.Marshal(b.target)
		if err != nil {
			return fmt.Errorf("encode %s: %w", b.name, err)
		}
		if _, err := tx.ExecContext(ctx, upsert, b.name, string(data)); err != nil {
			return fmt.Errorf("upsert %s: %w", b.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Read decodes whatever buckets are present. Unknown buckets are ignored.
func (w *Writer) Read(ctx context.Context) (memory.Snapshot, error) {
	var snap memory.Snapshot
	targets := make(map[string]any)
	for _, b := range buckets(&snap) {
		targets[b.name] = b.target
	}
	rows, err := w.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return memory.Snapshot{}, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			name    string
			payload []byte
		)
		if err := rows.Scan(&name, &payload); err != nil {
			return memory.Snapshot{}, fmt.Errorf("scan: %w", err)
		}
		target, ok := targets[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return memory.Snapshot{}, fmt.Errorf("decode %s: %w", name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return memory.Snapshot{}, err
	}
	return snap, nil
}

// Dump opens driver/dsn, writes store's current state, and closes.
func Dump(ctx context.Context, store *memory.Store, driver, dsn string) error {
	w, err := Open(ctx, driver, dsn)
	if err != nil {
		return err
	}
	writeErr := w.Write(ctx, store.ExportState())
	if err := w.Close(); writeErr == nil {
		writeErr = err
	}
	return writeErr
}
