package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emissiondesk/internal/config"
)

type env struct {
	exports  string
	snapshot string
}

// quietEnv disables latency and failures and points artifacts at temp dirs.
func quietEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	e := env{exports: filepath.Join(dir, "exports"), snapshot: filepath.Join(dir, "dump.db")}
	t.Setenv(config.EnvMinLatency, "0s")
	t.Setenv(config.EnvMaxLatency, "0s")
	t.Setenv(config.EnvFailureRate, "0")
	t.Setenv(config.EnvSeed, "7")
	t.Setenv(config.EnvLogLevel, "warn")
	t.Setenv(config.EnvBlobDriver, "fs")
	t.Setenv(config.EnvBlobFSRoot, e.exports)
	t.Setenv(config.EnvSnapshotDriver, "sqlite")
	t.Setenv(config.EnvSnapshotDSN, e.snapshot)
	return e
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestUsage(t *testing.T) {
	code, _, stderr := runCLI(t)
	if code != 2 || !strings.Contains(stderr, "usage: emissiondesk") {
		t.Fatalf("no args: code %d stderr %q", code, stderr)
	}
	code, stdout, _ := runCLI(t, "help")
	if code != 0 || !strings.Contains(stdout, "export-report") {
		t.Fatalf("help: code %d stdout %q", code, stdout)
	}
	code, _, stderr = runCLI(t, "launch")
	if code != 2 || !strings.Contains(stderr, `unknown command "launch"`) {
		t.Fatalf("unknown: code %d stderr %q", code, stderr)
	}
}

func TestBadConfig(t *testing.T) {
	quietEnv(t)
	t.Setenv(config.EnvFailureRate, "2")
	code, _, stderr := runCLI(t, "summary")
	if code != 1 || !strings.Contains(stderr, "config:") {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
}

func TestSummary(t *testing.T) {
	quietEnv(t)
	code, stdout, stderr := runCLI(t, "summary")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
	for _, want := range []string{"Countries: 12", "Top emitters", "China", "Regions", "Asia", "Reports: 5 companies, 1 reports"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("summary missing %q:\n%s", want, stdout)
		}
	}

	code, stdout, _ = runCLI(t, "summary", "-json")
	if code != 0 {
		t.Fatalf("json code %d", code)
	}
	var decoded struct {
		Countries struct {
			Count int `json:"count"`
		} `json:"countries"`
		TopEmitters []struct {
			Name string `json:"name"`
		} `json:"topEmitters"`
	}
	if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Countries.Count != 12 || decoded.TopEmitters[0].Name != "China" {
		t.Fatalf("unexpected summary %+v", decoded)
	}
}

func TestCompanies(t *testing.T) {
	quietEnv(t)
	code, stdout, stderr := runCLI(t, "companies")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "Samsung Electronics") || !strings.Contains(stdout, "POSCO") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestRegions(t *testing.T) {
	quietEnv(t)
	code, stdout, _ := runCLI(t, "regions", "-order", "first-seen")
	if code != 0 {
		t.Fatalf("code %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 6 || !strings.HasPrefix(lines[1], "Asia") || !strings.HasPrefix(lines[2], "North America") {
		t.Fatalf("unexpected regions:\n%s", stdout)
	}
	code, _, stderr := runCLI(t, "regions", "-order", "alphabetical")
	if code != 1 || !strings.Contains(stderr, "error kind: INVALID_INPUT") {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
}

func TestNotifications(t *testing.T) {
	quietEnv(t)
	code, stdout, stderr := runCLI(t, "notifications", "-status", "unread")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "Emission threshold exceeded") || strings.Contains(stdout, "System update complete") {
		t.Fatalf("unread filter not applied:\n%s", stdout)
	}
	if !strings.Contains(stdout, "6 total, 2 unread") {
		t.Fatalf("missing distribution line:\n%s", stdout)
	}
}

func TestTransientFailuresAreRetriedThenReported(t *testing.T) {
	quietEnv(t)
	t.Setenv(config.EnvFailureRate, "1")
	code, _, stderr := runCLI(t, "notifications")
	if code != 1 {
		t.Fatalf("expected failure, got %d", code)
	}
	if strings.Count(stderr, `"msg":"retrying"`) != maxAttempts-1 {
		t.Fatalf("expected %d retry logs:\n%s", maxAttempts-1, stderr)
	}
	if !strings.Contains(stderr, "error kind: TRANSIENT") {
		t.Fatalf("missing error kind:\n%s", stderr)
	}
}

func TestExportReport(t *testing.T) {
	e := quietEnv(t)
	code, stdout, stderr := runCLI(t, "export-report", "-id", "p1", "-format", "html")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "exported reports/c1/p1_") || !strings.Contains(stdout, "file://") {
		t.Fatalf("unexpected output %q", stdout)
	}
	matches, _ := filepath.Glob(filepath.Join(e.exports, "reports", "c1", "p1_*.html"))
	if len(matches) != 1 {
		t.Fatalf("expected exported file, got %v", matches)
	}
	body, err := os.ReadFile(matches[0])
	if err != nil || !strings.Contains(string(body), "Sustainability Report") {
		t.Fatalf("unexpected export body %q %v", body, err)
	}

	code, _, stderr = runCLI(t, "export-report")
	if code != 1 || !strings.Contains(stderr, "INVALID_INPUT") {
		t.Fatalf("missing id: code %d stderr %q", code, stderr)
	}
	code, _, stderr = runCLI(t, "export-report", "-id", "nope")
	if code != 1 || !strings.Contains(stderr, "NOT_FOUND") {
		t.Fatalf("unknown id: code %d stderr %q", code, stderr)
	}
	code, _, _ = runCLI(t, "export-report", "-id", "p1", "-format", "pdf")
	if code != 1 {
		t.Fatalf("bad format should fail")
	}
}

func TestSnapshot(t *testing.T) {
	e := quietEnv(t)
	code, stdout, stderr := runCLI(t, "snapshot")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
	if !strings.Contains(stdout, "countries, companies, reports, notifications, users") {
		t.Fatalf("unexpected output %q", stdout)
	}
	if _, err := os.Stat(e.snapshot); err != nil {
		t.Fatalf("expected sqlite file: %v", err)
	}
	code, _, _ = runCLI(t, "snapshot", "-driver", "mysql")
	if code != 1 {
		t.Fatalf("unknown driver should fail")
	}
}

func TestMetrics(t *testing.T) {
	quietEnv(t)
	code, stdout, stderr := runCLI(t, "metrics")
	if code != 0 {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
	for _, want := range []string{
		"# TYPE emissiondesk_service_operations_total counter",
		`emissiondesk_service_operations_total{operation="fetch_countries",outcome="success"} 1`,
		`emissiondesk_service_operations_total{operation="fetch_notifications",outcome="success"} 1`,
		"emissiondesk_service_operation_duration_seconds_bucket",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("metrics missing %q:\n%s", want, stdout)
		}
	}
}

func TestFlagHelpExitsZero(t *testing.T) {
	quietEnv(t)
	code, _, stderr := runCLI(t, "companies", "-h")
	if code != 0 || !strings.Contains(stderr, "-json") {
		t.Fatalf("code %d stderr %q", code, stderr)
	}
}

func TestMainUsesExitFunc(t *testing.T) {
	quietEnv(t)
	var codes []int
	old := exitFunc
	exitFunc = func(code int) { codes = append(codes, code) }
	defer func() { exitFunc = old }()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"emissiondesk", "help"}
	main()
	os.Args = []string{"emissiondesk", "bogus"}
	main()
	if len(codes) != 2 || codes[0] != 0 || codes[1] != 2 {
		t.Fatalf("unexpected exit codes %v", codes)
	}
}
