// Package analytics derives dashboard metrics from entity snapshots. Every
// function is pure: inputs are never modified and results are fresh values.
package analytics

import (
	"cmp"
	"slices"

	"emissiondesk/pkg/domain"
)

// SumByPeriod merges emission rows from every input list, summing rows that
// share a period. The result is ordered by ascending period key. Source labels
// are not carried into the merged rows.
func SumByPeriod(lists ...[]domain.GhgEmission) []domain.GhgEmission {
	totals := make(map[string]float64)
	for _, rows := range lists {
		for _, row := range rows {
			totals[row.Period] += row.Emissions
		}
	}
	out := make([]domain.GhgEmission, 0, len(totals))
	for period, sum := range totals {
		out = append(out, domain.GhgEmission{Period: period, Emissions: sum})
	}
	slices.SortFunc(out, func(a, b domain.GhgEmission) int {
		return cmp.Compare(a.Period, b.Period)
	})
	return out
}

// MonthlyRollup returns the company's group emissions per period: its own
// rows plus every subsidiary row, summed by period in ascending order.
func MonthlyRollup(c domain.Company) []domain.GhgEmission {
	lists := make([][]domain.GhgEmission, 0, len(c.Subsidiaries)+1)
	lists = append(lists, c.Emissions)
	for _, sub := range c.Subsidiaries {
		lists = append(lists, sub.Emissions)
	}
	return SumByPeriod(lists...)
}

// PeriodTotals sums the companies' own emissions (subsidiaries excluded) by
// period, giving the cross-company time series.
func PeriodTotals(companies []domain.Company) []domain.GhgEmission {
	lists := make([][]domain.GhgEmission, 0, len(companies))
	for _, c := range companies {
		lists = append(lists, c.Emissions)
	}
	return SumByPeriod(lists...)
}

// Latest returns the last stored row, which is the latest period by the
// chronological append invariant.
func Latest(rows []domain.GhgEmission) (domain.GhgEmission, bool) {
	if len(rows) == 0 {
		return domain.GhgEmission{}, false
	}
	return rows[len(rows)-1], true
}

// LatestEmissions returns the latest stored value, or 0 when there are no rows.
func LatestEmissions(rows []domain.GhgEmission) float64 {
	latest, _ := Latest(rows)
	return latest.Emissions
}

// PeriodChange returns the percentage change between the last two stored
// rows. It is 0 with fewer than two rows and when the previous value is 0.
func PeriodChange(rows []domain.GhgEmission) float64 {
	if len(rows) < 2 {
		return 0
	}
	previous := rows[len(rows)-2].Emissions
	if previous == 0 {
		return 0
	}
	latest := rows[len(rows)-1].Emissions
	return (latest - previous) / previous * 100
}

// ShareOfTotal returns part as a percentage of total, or 0 when total is 0.
func ShareOfTotal(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
