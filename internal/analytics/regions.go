package analytics

import (
	"slices"

	"emissiondesk/pkg/domain"
)

// RegionOrder selects the ordering of AggregateRegions output.
type RegionOrder int

const (
	// FirstSeen keeps regions in order of first occurrence in the input.
	FirstSeen RegionOrder = iota
	// ByEmissionsDesc orders regions by total emissions, largest first.
	ByEmissionsDesc
)

// RegionStat summarizes the countries of one region.
type RegionStat struct {
	Region           string  `json:"region"`
	Count            int     `json:"count"`
	Emissions        float64 `json:"emissions"`
	AverageEmissions float64 `json:"avgEmissionsPerCountry"`
}

// AggregateRegions groups countries by region. Every country lands in exactly
// one region and counts add up to len(countries).
func AggregateRegions(countries []domain.Country, order RegionOrder) []RegionStat {
	index := make(map[string]int)
	stats := make([]RegionStat, 0)
	for _, c := range countries {
		i, ok := index[c.Region]
		if !ok {
			i = len(stats)
			index[c.Region] = i
			stats = append(stats, RegionStat{Region: c.Region})
		}
		stats[i].Count++
		stats[i].Emissions += c.Emissions
	}
	for i := range stats {
		stats[i].AverageEmissions = stats[i].Emissions / float64(stats[i].Count)
	}
	if order == ByEmissionsDesc {
		return TopN(stats, len(stats), func(s RegionStat) float64 { return s.Emissions })
	}
	return stats
}

// Regions returns the distinct regions, sorted.
func Regions(countries []domain.Country) []string {
	seen := make(map[string]struct{}, len(countries))
	out := make([]string, 0)
	for _, c := range countries {
		if _, ok := seen[c.Region]; ok {
			continue
		}
		seen[c.Region] = struct{}{}
		out = append(out, c.Region)
	}
	slices.Sort(out)
	return out
}

// CountrySummary holds headline figures across a set of countries.
type CountrySummary struct {
	Count           int     `json:"count"`
	TotalEmissions  float64 `json:"totalEmissions"`
	AvgEmissions    float64 `json:"avgEmissions"`
	MaxEmissions    float64 `json:"maxEmissions"`
	MinEmissions    float64 `json:"minEmissions"`
	TotalPopulation int64   `json:"totalPopulation"`
	// PerCapita is tonnes of CO2 per person (emissions are megatonnes).
	PerCapita float64 `json:"emissionsPerCapita"`
}

// SummarizeCountries computes a CountrySummary. An empty input yields zeros.
func SummarizeCountries(countries []domain.Country) CountrySummary {
	var s CountrySummary
	for i, c := range countries {
		s.TotalEmissions += c.Emissions
		s.TotalPopulation += c.Population
		if i == 0 || c.Emissions > s.MaxEmissions {
			s.MaxEmissions = c.Emissions
		}
		if i == 0 || c.Emissions < s.MinEmissions {
			s.MinEmissions = c.Emissions
		}
	}
	s.Count = len(countries)
	if s.Count > 0 {
		s.AvgEmissions = s.TotalEmissions / float64(s.Count)
	}
	if s.TotalPopulation > 0 {
		s.PerCapita = s.TotalEmissions * 1e6 / float64(s.TotalPopulation)
	}
	return s
}
