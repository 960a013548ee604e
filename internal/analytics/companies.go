package analytics

import "emissiondesk/pkg/domain"

// CompanyView is the per-company row shown in company tables.
type CompanyView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Country         string  `json:"country"`
	Industry        string  `json:"industry"`
	LatestPeriod    string  `json:"latestPeriod,omitempty"`
	LatestEmissions float64 `json:"latestEmissions"`
	Change          float64 `json:"change"`
	SubsidiaryCount int     `json:"subsidiaryCount"`
}

// NewCompanyView builds the view row for c from its own emissions.
func NewCompanyView(c domain.Company) CompanyView {
	latest, _ := Latest(c.Emissions)
	return CompanyView{
		ID:              c.ID,
		Name:            c.Name,
		Country:         c.Country,
		Industry:        c.Industry,
		LatestPeriod:    latest.Period,
		LatestEmissions: latest.Emissions,
		Change:          PeriodChange(c.Emissions),
		SubsidiaryCount: len(c.Subsidiaries),
	}
}

// CompanyViews maps NewCompanyView over companies, keeping their order.
func CompanyViews(companies []domain.Company) []CompanyView {
	out := make([]CompanyView, len(companies))
	for i, c := range companies {
		out[i] = NewCompanyView(c)
	}
	return out
}

// TotalEmployees counts the parent's employees plus every subsidiary's.
func TotalEmployees(c domain.Company) int {
	total := c.EmployeeCount
	for _, sub := range c.Subsidiaries {
		total += sub.EmployeeCount
	}
	return total
}

// AverageOwnership is the mean subsidiary ownership percentage, 0 without
// subsidiaries.
func AverageOwnership(c domain.Company) float64 {
	if len(c.Subsidiaries) == 0 {
		return 0
	}
	var sum float64
	for _, sub := range c.Subsidiaries {
		sum += sub.OwnershipPercentage
	}
	return sum / float64(len(c.Subsidiaries))
}

// LatestSubsidiaryEmissions sums each subsidiary's latest stored value.
func LatestSubsidiaryEmissions(c domain.Company) float64 {
	var sum float64
	for _, sub := range c.Subsidiaries {
		sum += LatestEmissions(sub.Emissions)
	}
	return sum
}

// LatestGroupEmissions is the company's latest own value plus each
// subsidiary's latest value. Latest periods may differ between members.
func LatestGroupEmissions(c domain.Company) float64 {
	return LatestEmissions(c.Emissions) + LatestSubsidiaryEmissions(c)
}

// ReportsStats holds headline figures for the reports page.
type ReportsStats struct {
	TotalCompanies        int     `json:"totalCompanies"`
	TotalReports          int     `json:"totalReports"`
	AvgLatestEmissions    float64 `json:"avgEmissions"`
	CompaniesWithIncrease int     `json:"companiesWithIncrease"`
}

// ComputeReportsStats summarizes companies and reports. The average uses each
// company's latest own value and is 0 with no companies.
func ComputeReportsStats(companies []domain.Company, reports []domain.Report) ReportsStats {
	stats := ReportsStats{TotalCompanies: len(companies), TotalReports: len(reports)}
	var sum float64
	for _, c := range companies {
		sum += LatestEmissions(c.Emissions)
		if PeriodChange(c.Emissions) > 0 {
			stats.CompaniesWithIncrease++
		}
	}
	if len(companies) > 0 {
		stats.AvgLatestEmissions = sum / float64(len(companies))
	}
	return stats
}
