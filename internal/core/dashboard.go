package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"emissiondesk/internal/analytics"
	"emissiondesk/pkg/domain"
)

// DashboardSummary is everything the overview page renders at once.
type DashboardSummary struct {
	Countries    analytics.CountrySummary `json:"countries"`
	TopEmitters  []domain.Country         `json:"topEmitters"`
	Regions      []analytics.RegionStat   `json:"regions"`
	Companies    []analytics.CompanyView  `json:"companies"`
	TimeSeries   []domain.GhgEmission     `json:"timeSeries"`
	ReportsStats analytics.ReportsStats   `json:"reportsStats"`
}

// DashboardTopEmitters is the size of the top emitters list in the summary.
const DashboardTopEmitters = 10

// FetchDashboardSummary loads countries, companies and reports concurrently
// and derives the overview figures. None of the three reads are gated, so it
// only fails on cancellation.
func (s *Service) FetchDashboardSummary(ctx context.Context) (DashboardSummary, error) {
	var (
		countries []domain.Country
		companies []domain.Company
		reports   []domain.Report
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		countries, err = s.FetchCountries(gctx)
		return err
	})
	g.Go(func() (err error) {
		companies, err = s.FetchCompanies(gctx)
		return err
	})
	g.Go(func() (err error) {
		reports, err = s.FetchReports(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardSummary{}, err
	}
	return DashboardSummary{
		Countries:    analytics.SummarizeCountries(countries),
		TopEmitters:  analytics.TopN(countries, DashboardTopEmitters, func(c domain.Country) float64 { return c.Emissions }),
		Regions:      analytics.AggregateRegions(countries, analytics.ByEmissionsDesc),
		Companies:    analytics.CompanyViews(companies),
		TimeSeries:   analytics.PeriodTotals(companies),
		ReportsStats: analytics.ComputeReportsStats(companies, reports),
	}, nil
}

// FetchReportsStats loads companies and reports concurrently and summarizes
// them.
func (s *Service) FetchReportsStats(ctx context.Context) (analytics.ReportsStats, error) {
	var (
		companies []domain.Company
		reports   []domain.Report
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		companies, err = s.FetchCompanies(gctx)
		return err
	})
	g.Go(func() (err error) {
		reports, err = s.FetchReports(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.ReportsStats{}, err
	}
	return analytics.ComputeReportsStats(companies, reports), nil
}
