package analytics

import (
	"math"
	"testing"

	"emissiondesk/internal/seed"
	"emissiondesk/pkg/domain"
)

func TestCompanyViews(t *testing.T) {
	views := CompanyViews(seed.Companies())
	if len(views) != 5 {
		t.Fatalf("expected 5 views")
	}
	c2 := views[1]
	if c2.ID != "c2" || c2.LatestEmissions != 120 || c2.LatestPeriod != "2024-03" || c2.SubsidiaryCount != 2 {
		t.Fatalf("c2 view = %+v", c2)
	}
	if want := (120.0 - 105.0) / 105.0 * 100; math.Abs(c2.Change-want) > 1e-9 {
		t.Fatalf("c2 change = %v, want %v", c2.Change, want)
	}
	empty := NewCompanyView(domain.Company{ID: "x"})
	if empty.LatestEmissions != 0 || empty.Change != 0 || empty.LatestPeriod != "" {
		t.Fatalf("empty view = %+v", empty)
	}
}

func TestCompanyHelpers(t *testing.T) {
	c := seed.Companies()[0]
	if got := TotalEmployees(c); got != 267_937+25_000+30_000 {
		t.Fatalf("employees = %d", got)
	}
	if got := AverageOwnership(c); math.Abs(got-(84.8+20.7)/2) > 1e-9 {
		t.Fatalf("ownership = %v", got)
	}
	if got := LatestGroupEmissions(c); got != 95+48+32 {
		t.Fatalf("group latest = %v", got)
	}
	if AverageOwnership(domain.Company{}) != 0 {
		t.Fatalf("expected zero ownership without subsidiaries")
	}
}

func TestComputeReportsStats(t *testing.T) {
	stats := ComputeReportsStats(seed.Companies(), seed.Reports())
	if stats.TotalCompanies != 5 || stats.TotalReports != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	if want := (95.0 + 120 + 160 + 88 + 210) / 5; math.Abs(stats.AvgLatestEmissions-want) > 1e-9 {
		t.Fatalf("avg = %v, want %v", stats.AvgLatestEmissions, want)
	}
	// c2, c3, c5 increased from 2024-02 to 2024-03
	if stats.CompaniesWithIncrease != 3 {
		t.Fatalf("increase count = %d", stats.CompaniesWithIncrease)
	}
	if zero := ComputeReportsStats(nil, nil); zero != (ReportsStats{}) {
		t.Fatalf("empty stats = %+v", zero)
	}
}
