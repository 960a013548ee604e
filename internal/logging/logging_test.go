package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"emissiondesk/internal/core"
	"emissiondesk/internal/sim"
)

var _ core.Logger = (*Logger)(nil)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{"": zapcore.InfoLevel, "DEBUG": zapcore.DebugLevel, " warn ": zapcore.WarnLevel, "error": zapcore.ErrorLevel}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewWritesJSONAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("hidden")
	l.Warn("operation failed", "operation", "create_company", "kind", "TRANSIENT")
	_ = l.Sync()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["msg"] != "operation failed" || entry["operation"] != "create_company" || entry["level"] != "warn" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing timestamp: %v", entry)
	}
}

func TestFromZapForwardsFields(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(obs)).With("component", "service")
	l.Debug("d", "n", 1)
	l.Info("i")
	l.Error("e", "err", "boom")
	if logs.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", logs.Len())
	}
	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(errs) != 1 || errs[0].ContextMap()["err"] != "boom" || errs[0].ContextMap()["component"] != "service" {
		t.Fatalf("unexpected error entries %+v", errs)
	}
}

func TestNopAndServiceWiring(t *testing.T) {
	Nop().Info("ignored")
	obs, logs := observer.New(zapcore.DebugLevel)
	svc := core.NewEmptyService(core.WithLogger(FromZap(zap.New(obs))), core.WithSimulator(sim.Instant))
	if _, err := svc.FetchCompanies(t.Context()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if logs.FilterField(zap.String("operation", "fetch_companies")).Len() != 1 {
		t.Fatalf("expected service log entry, got %+v", logs.All())
	}
}
