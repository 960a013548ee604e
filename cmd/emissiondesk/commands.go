package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/common/expfmt"

	"emissiondesk/internal/analytics"
	"emissiondesk/internal/blob"
	"emissiondesk/internal/export"
	"emissiondesk/internal/infra/snapshot"
	"emissiondesk/pkg/domain"
)

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
}

func mt(v float64) string { return humanize.CommafWithDigits(v, 1) }

func signed(v float64) string { return fmt.Sprintf("%+.1f%%", v) }

func runSummary(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "summary")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	summary, err := retry(ctx, a, "fetch_dashboard_summary", a.svc.FetchDashboardSummary)
	if err != nil {
		return err
	}
	if *asJSON {
		return a.writeJSON(summary)
	}
	c := summary.Countries
	_, _ = fmt.Fprintf(a.stdout, "Countries: %d  Total: %s Mt  Average: %s Mt  Per capita: %.2f t\n",
		c.Count, mt(c.TotalEmissions), mt(c.AvgEmissions), c.PerCapita)
	_, _ = fmt.Fprintln(a.stdout, "\nTop emitters")
	tw := a.table()
	_, _ = fmt.Fprintln(tw, "RANK\tCOUNTRY\tREGION\tEMISSIONS (Mt)")
	for i, country := range summary.TopEmitters {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, country.Name, country.Region, mt(country.Emissions))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(a.stdout, "\nRegions")
	if err := a.printRegions(summary.Regions, c.TotalEmissions); err != nil {
		return err
	}
	rs := summary.ReportsStats
	_, _ = fmt.Fprintf(a.stdout, "\nReports: %d companies, %d reports, average latest emissions %s, %d increasing\n",
		rs.TotalCompanies, rs.TotalReports, mt(rs.AvgLatestEmissions), rs.CompaniesWithIncrease)
	if n := len(summary.TimeSeries); n > 0 {
		last := summary.TimeSeries[n-1]
		_, _ = fmt.Fprintf(a.stdout, "Latest period %s: %s (%s vs previous)\n",
			last.Period, mt(last.Emissions), signed(analytics.PeriodChange(summary.TimeSeries)))
	}
	return nil
}

func (a *app) printRegions(regions []analytics.RegionStat, total float64) error {
	tw := a.table()
	_, _ = fmt.Fprintln(tw, "REGION\tCOUNTRIES\tEMISSIONS (Mt)\tAVERAGE\tSHARE")
	for _, r := range regions {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%.1f%%\n",
			r.Region, r.Count, mt(r.Emissions), mt(r.AverageEmissions), analytics.ShareOfTotal(r.Emissions, total))
	}
	return tw.Flush()
}

func runCompanies(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "companies")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	views, err := retry(ctx, a, "fetch_company_views", a.svc.FetchCompanyViews)
	if err != nil {
		return err
	}
	if *asJSON {
		return a.writeJSON(views)
	}
	tw := a.table()
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tCOUNTRY\tINDUSTRY\tSUBSIDIARIES\tLATEST\tEMISSIONS\tCHANGE")
	for _, v := range views {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			v.ID, v.Name, v.Country, v.Industry, v.SubsidiaryCount, v.LatestPeriod, mt(v.LatestEmissions), signed(v.Change))
	}
	return tw.Flush()
}

func runRegions(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "regions")
	order := fs.String("order", "emissions", "ordering: emissions|first-seen")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var ro analytics.RegionOrder
	switch *order {
	case "emissions":
		ro = analytics.ByEmissionsDesc
	case "first-seen":
		ro = analytics.FirstSeen
	default:
		return domain.ErrInvalidInput{Field: "order", Reason: fmt.Sprintf("%q is not emissions or first-seen", *order)}
	}
	regions, err := retry(ctx, a, "fetch_region_stats", func(ctx context.Context) ([]analytics.RegionStat, error) {
		return a.svc.FetchRegionStats(ctx, ro)
	})
	if err != nil {
		return err
	}
	if *asJSON {
		return a.writeJSON(regions)
	}
	var total float64
	for _, r := range regions {
		total += r.Emissions
	}
	return a.printRegions(regions, total)
}

func runNotifications(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "notifications")
	status := fs.String("status", "all", "read state: all|read|unread")
	category := fs.String("category", "", "only this category")
	search := fs.String("search", "", "case-insensitive title/message filter")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter := analytics.NotificationFilter{
		Read:     analytics.ReadFilter(*status),
		Category: domain.Category(*category),
		Search:   *search,
	}
	switch filter.Read {
	case analytics.ReadAny, analytics.ReadOnly, analytics.UnreadOnly:
	default:
		return domain.ErrInvalidInput{Field: "status", Reason: fmt.Sprintf("%q is not all, read or unread", *status)}
	}
	list, err := retry(ctx, a, "filter_notifications", func(ctx context.Context) ([]domain.Notification, error) {
		return a.svc.FilterNotifications(ctx, filter)
	})
	if err != nil {
		return err
	}
	dist, err := retry(ctx, a, "fetch_notification_distribution", a.svc.FetchNotificationDistribution)
	if err != nil {
		return err
	}
	if *asJSON {
		return a.writeJSON(struct {
			Notifications []domain.Notification               `json:"notifications"`
			Distribution  analytics.NotificationDistribution `json:"distribution"`
		}{list, dist})
	}
	tw := a.table()
	_, _ = fmt.Fprintln(tw, "ID\tREAD\tPRIORITY\tCATEGORY\tCREATED\tTITLE")
	for _, n := range list {
		read := " "
		if n.IsRead {
			read = "x"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", n.ID, read, n.Priority, n.Category, humanize.Time(n.CreatedAt), n.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	parts := make([]string, 0, len(dist.Categories))
	for _, c := range dist.Categories {
		parts = append(parts, fmt.Sprintf("%s=%d", c.Category, c.Count))
	}
	_, _ = fmt.Fprintf(a.stdout, "\n%d total, %d unread (%s)\n", dist.Total, dist.Unread, strings.Join(parts, " "))
	return nil
}

func runExportReport(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "export-report")
	id := fs.String("id", "", "report id (required)")
	format := fs.String("format", "text", "text|html")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return domain.ErrInvalidInput{Field: "id", Reason: "required"}
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	store, err := blob.Open(ctx, a.cfg.Blob)
	if err != nil {
		return err
	}
	exporter := export.NewExporter(store)
	info, err := retry(ctx, a, "export_report", func(ctx context.Context) (blob.Info, error) {
		return exporter.ExportByID(ctx, a.svc, *id, f)
	})
	if err != nil {
		return err
	}
	a.logger.Info("report exported", "report", *id, "key", info.Key, "driver", store.Driver())
	_, _ = fmt.Fprintf(a.stdout, "exported %s (%s) to %s\n", info.Key, humanize.Bytes(uint64(info.Size)), store.Driver())
	if info.URL != "" {
		_, _ = fmt.Fprintln(a.stdout, info.URL)
	}
	return nil
}

func runSnapshot(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "snapshot")
	driver := fs.String("driver", a.cfg.Snapshot.Driver, "sqlite|postgres")
	dsn := fs.String("dsn", a.cfg.Snapshot.DSN, "sqlite path or postgres URL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := snapshot.Dump(ctx, a.store, *driver, *dsn); err != nil {
		return err
	}
	a.logger.Info("snapshot written", "driver", *driver)
	_, _ = fmt.Fprintf(a.stdout, "wrote %s to %s\n", strings.Join(snapshot.Buckets(), ", "), *driver)
	return nil
}

func runMetrics(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "metrics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := retry(ctx, a, "fetch_dashboard_summary", a.svc.FetchDashboardSummary); err != nil {
		return err
	}
	if _, err := retry(ctx, a, "fetch_user_stats", a.svc.FetchUserStats); err != nil {
		return err
	}
	if _, err := retry(ctx, a, "fetch_notification_distribution", a.svc.FetchNotificationDistribution); err != nil {
		return err
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.stdout, mf); err != nil {
			return err
		}
	}
	return nil
}
