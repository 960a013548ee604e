package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"emissiondesk/internal/blob"
	"emissiondesk/pkg/domain"
)

// ReportSource resolves a report and the company it is filed under.
type ReportSource interface {
	FetchReportWithCompany(ctx context.Context, reportID string) (domain.Report, domain.Company, error)
}

// Exporter renders reports into a blob store.
type Exporter struct {
	store blob.Store
	now   func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithClock overrides the time used in artifact keys.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExporter writes artifacts to store.
func NewExporter(store blob.Store, opts ...Option) *Exporter {
	e := &Exporter{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Key returns the artifact key for a report rendered at t:
// reports/<companyID>/<reportID>_<UTC stamp>.<ext>. The stamp carries
// nanoseconds so repeated exports of one report get distinct keys.
func Key(r domain.Report, f Format, t time.Time) string {
	return fmt.Sprintf("reports/%s/%s_%s.%s",
		keySegment(r.CompanyID), keySegment(r.ID), t.UTC().Format(stampLayout), f.Extension())
}

const stampLayout = "20060102T150405.000000000Z"

func keySegment(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, s)
	if s == "" {
		return "unknown"
	}
	return s
}

// Export renders r filed under c and stores it.
func (e *Exporter) Export(ctx context.Context, r domain.Report, c domain.Company, f Format) (blob.Info, error) {
	var buf bytes.Buffer
	if err := Render(&buf, f, NewDocument(r, c)); err != nil {
		return blob.Info{}, err
	}
	info, err := e.store.Put(ctx, Key(r, f, e.now()), &buf, blob.PutOptions{
		ContentType: f.ContentType(),
		Metadata: map[string]string{
			"report-id":  r.ID,
			"company-id": c.ID,
			"format":     string(f),
		},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store export of report %s: %w", r.ID, err)
	}
	return info, nil
}

// ExportByID resolves reportID through src and exports it.
func (e *Exporter) ExportByID(ctx context.Context, src ReportSource, reportID string, f Format) (blob.Info, error) {
	r, c, err := src.FetchReportWithCompany(ctx, reportID)
	if err != nil {
		return blob.Info{}, err
	}
	return e.Export(ctx, r, c, f)
}

// List returns the stored exports of a company, or all exports for "".
func (e *Exporter) List(ctx context.Context, companyID string) ([]blob.Info, error) {
	prefix := "reports/"
	if companyID != "" {
		prefix += keySegment(companyID) + "/"
	}
	return e.store.List(ctx, prefix)
}
