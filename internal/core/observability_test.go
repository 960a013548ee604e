package core

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"emissiondesk/internal/sim"
	"emissiondesk/pkg/domain"
)

type captureLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *captureLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level+":"+msg)
}

func (l *captureLogger) Debug(msg string, _ ...any) { l.add("debug", msg) }
func (l *captureLogger) Info(msg string, _ ...any)  { l.add("info", msg) }
func (l *captureLogger) Warn(msg string, _ ...any)  { l.add("warn", msg) }
func (l *captureLogger) Error(msg string, _ ...any) { l.add("error", msg) }

func (l *captureLogger) has(entry string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e == entry {
			return true
		}
	}
	return false
}

func TestNoopLogger(t *testing.T) {
	logger := noopLogger{}
	logger.Debug("m", "k", "v")
	logger.Info("m")
	logger.Warn("m")
	logger.Error("m")
}

func TestPrometheusRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	gate := &switchSimulator{}
	svc := newTestService(t, WithSimulator(gate), WithMetricsRecorder(rec))
	ctx := context.Background()

	if _, err := svc.FetchUsers(ctx); err != nil {
		t.Fatalf("fetch users: %v", err)
	}
	gate.fail.Store(true)
	if _, err := svc.FetchUsers(ctx); err == nil {
		t.Fatalf("expected failure")
	}
	if got := testutil.ToFloat64(rec.Calls().WithLabelValues("fetch_users", "success")); got != 1 {
		t.Fatalf("success count = %v", got)
	}
	if got := testutil.ToFloat64(rec.Calls().WithLabelValues("fetch_users", "error")); got != 1 {
		t.Fatalf("error count = %v", got)
	}
	if _, err := NewPrometheusRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestJSONTracerRecordsSpans(t *testing.T) {
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	svc := newTestService(t, WithSimulator(sim.Static{Fail: true}), WithTracer(tracer))
	_, _ = svc.DeleteUser(context.Background(), "u1")

	entries := tracer.Entries()
	if len(entries) != 1 || entries[0].Operation != "delete_user" || entries[0].Status != "error" {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Kind != domain.KindTransient {
		t.Fatalf("kind = %s", entries[0].Kind)
	}
	var decoded JSONTraceEntry
	if err := json.NewDecoder(strings.NewReader(buf.String())).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Operation != "delete_user" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestServiceLogsByKind(t *testing.T) {
	logger := &captureLogger{}
	gate := &switchSimulator{}
	svc := newTestService(t, WithSimulator(gate), WithLogger(logger))
	ctx := context.Background()

	if _, err := svc.CreateCompany(ctx, domain.Company{Name: "Logged"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if !logger.has("debug:operation completed") || !logger.has("info:state changed") {
		t.Fatalf("missing success logs: %v", logger.entries)
	}
	if _, err := svc.FetchSubsidiaries(ctx, "missing"); err == nil {
		t.Fatalf("expected not found")
	}
	if !logger.has("error:operation failed") {
		t.Fatalf("not found should log at error: %v", logger.entries)
	}
	gate.fail.Store(true)
	_, _ = svc.FetchUsers(ctx)
	if !logger.has("warn:operation failed") {
		t.Fatalf("transient failure should log at warn: %v", logger.entries)
	}
}

func TestNilOptionsKeepDefaults(t *testing.T) {
	svc := NewEmptyService(nil, WithLogger(nil), WithTracer(nil), WithMetricsRecorder(nil), WithClock(nil), WithSimulator(nil))
	if _, ok := svc.logger.(noopLogger); !ok {
		t.Fatalf("expected noop logger")
	}
	if svc.now().IsZero() {
		t.Fatalf("expected default clock")
	}
}
