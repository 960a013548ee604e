// Package config loads runtime settings from EMISSIONDESK_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by Load.
const (
	EnvMinLatency     = "EMISSIONDESK_SIM_MIN_LATENCY"
	EnvMaxLatency     = "EMISSIONDESK_SIM_MAX_LATENCY"
	EnvFailureRate    = "EMISSIONDESK_SIM_FAILURE_RATE"
	EnvSeed           = "EMISSIONDESK_SIM_SEED"
	EnvLogLevel       = "EMISSIONDESK_LOG_LEVEL"
	EnvBlobDriver     = "EMISSIONDESK_BLOB_DRIVER"
	EnvBlobFSRoot     = "EMISSIONDESK_BLOB_FS_ROOT"
	EnvS3Bucket       = "EMISSIONDESK_BLOB_S3_BUCKET"
	EnvS3Region       = "EMISSIONDESK_BLOB_S3_REGION"
	EnvS3Endpoint     = "EMISSIONDESK_BLOB_S3_ENDPOINT"
	EnvS3PathStyle    = "EMISSIONDESK_BLOB_S3_PATH_STYLE"
	EnvSnapshotDriver = "EMISSIONDESK_SNAPSHOT_DRIVER"
	EnvSnapshotDSN    = "EMISSIONDESK_SNAPSHOT_DSN"
)

// Config is the process configuration.
type Config struct {
	Simulation Simulation
	LogLevel   string
	Blob       Blob
	Snapshot   Snapshot
}

// Simulation configures injected latency and failures.
type Simulation struct {
	MinLatency  time.Duration
	MaxLatency  time.Duration
	FailureRate float64
	// Seed of 0 means seed from the clock.
	Seed int64
}

// Blob selects where exported artifacts are stored.
type Blob struct {
	Driver string // fs|s3|memory
	FSRoot string
	S3     S3
}

// S3 holds S3 / MinIO settings. Credentials come from the default AWS chain.
type S3 struct {
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
}

// Snapshot selects the SQL target of dataset dumps.
type Snapshot struct {
	Driver string // sqlite|postgres
	DSN    string
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Simulation: Simulation{
			MinLatency:  200 * time.Millisecond,
			MaxLatency:  800 * time.Millisecond,
			FailureRate: 0.15,
		},
		LogLevel: "info",
		Blob:     Blob{Driver: "fs", FSRoot: "./exports", S3: S3{Region: "us-east-1"}},
		Snapshot: Snapshot{Driver: "sqlite", DSN: "./emissiondesk.db"},
	}
}

// Load reads the environment over Default. Unset variables keep their
// default; malformed ones are reported.
func Load() (Config, error) {
	cfg := Default()
	var err error
	sim := &cfg.Simulation
	if sim.MinLatency, err = getenvDuration(EnvMinLatency, sim.MinLatency); err != nil {
		return Config{}, err
	}
	if sim.MaxLatency, err = getenvDuration(EnvMaxLatency, sim.MaxLatency); err != nil {
		return Config{}, err
	}
	if sim.FailureRate, err = getenvFloat(EnvFailureRate, sim.FailureRate); err != nil {
		return Config{}, err
	}
	if sim.Seed, err = getenvInt(EnvSeed, sim.Seed); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = strings.ToLower(getenv(EnvLogLevel, cfg.LogLevel))

	cfg.Blob.Driver = getenv(EnvBlobDriver, cfg.Blob.Driver)
	cfg.Blob.FSRoot = getenv(EnvBlobFSRoot, cfg.Blob.FSRoot)
	cfg.Blob.S3.Bucket = getenv(EnvS3Bucket, cfg.Blob.S3.Bucket)
	cfg.Blob.S3.Region = getenv(EnvS3Region, cfg.Blob.S3.Region)
	cfg.Blob.S3.Endpoint = getenv(EnvS3Endpoint, cfg.Blob.S3.Endpoint)
	if cfg.Blob.S3.PathStyle, err = getenvBool(EnvS3PathStyle, cfg.Blob.S3.PathStyle); err != nil {
		return Config{}, err
	}

	cfg.Snapshot.Driver = getenv(EnvSnapshotDriver, cfg.Snapshot.Driver)
	cfg.Snapshot.DSN = getenv(EnvSnapshotDSN, cfg.Snapshot.DSN)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	sim := c.Simulation
	if sim.MinLatency < 0 || sim.MaxLatency < 0 {
		return fmt.Errorf("latency must not be negative")
	}
	if sim.MaxLatency < sim.MinLatency {
		return fmt.Errorf("%s (%s) is below %s (%s)", EnvMaxLatency, sim.MaxLatency, EnvMinLatency, sim.MinLatency)
	}
	if sim.FailureRate < 0 || sim.FailureRate > 1 {
		return fmt.Errorf("%s must be within [0, 1], got %v", EnvFailureRate, sim.FailureRate)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.Blob.Driver {
	case "fs", "memory":
	case "s3":
		if c.Blob.S3.Bucket == "" {
			return fmt.Errorf("%s required for s3 driver", EnvS3Bucket)
		}
	default:
		return fmt.Errorf("unknown blob driver %s", c.Blob.Driver)
	}
	switch c.Snapshot.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown snapshot driver %s", c.Snapshot.Driver)
	}
	return nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}

func getenvInt(key string, def int64) (int64, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func getenvBool(key string, def bool) (bool, error) {
	v := getenv(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}
