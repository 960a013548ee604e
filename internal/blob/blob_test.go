package blob

import (
	"context"
	"errors"
	"strings"
	"testing"

	"emissiondesk/internal/config"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		cfg  config.Blob
		want Driver
	}{
		{config.Blob{Driver: "memory"}, DriverMemory},
		{config.Blob{Driver: "fs", FSRoot: t.TempDir()}, DriverFilesystem},
		{config.Blob{FSRoot: t.TempDir()}, DriverFilesystem},
	}
	for _, tc := range cases {
		s, err := Open(ctx, tc.cfg)
		if err != nil {
			t.Fatalf("open %+v: %v", tc.cfg, err)
		}
		if s.Driver() != tc.want {
			t.Fatalf("open %+v: driver %s, want %s", tc.cfg, s.Driver(), tc.want)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Open(ctx, config.Blob{Driver: "ftp"}); err == nil || !strings.Contains(err.Error(), "ftp") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
	if _, err := Open(ctx, config.Blob{Driver: "s3"}); err == nil {
		t.Fatalf("expected missing bucket error")
	}
}

func TestFacadeSentinels(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if _, err := s.Put(ctx, "a", strings.NewReader("1"), PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "a", strings.NewReader("2"), PutOptions{}); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := s.Head(ctx, "b"); !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
