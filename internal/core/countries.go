package core

import (
	"context"
	"strings"

	"emissiondesk/internal/analytics"
	"emissiondesk/pkg/domain"
)

// DefaultTopCountries is the limit used by the top-N country reads when none
// is given.
const DefaultTopCountries = 10

// FetchCountries returns every country. It never fails except on cancellation.
func (s *Service) FetchCountries(ctx context.Context) ([]domain.Country, error) {
	var out []domain.Country
	err := s.run(ctx, "fetch_countries", func(ctx context.Context) error {
		if err := s.wait(ctx); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out = v.ListCountries()
			return nil
		})
	})
	return out, err
}

// FetchCountriesByRegion returns the countries of one region.
func (s *Service) FetchCountriesByRegion(ctx context.Context, region string) ([]domain.Country, error) {
	return s.selectCountries(ctx, "fetch_countries_by_region", func(cs []domain.Country) []domain.Country {
		out := make([]domain.Country, 0, len(cs))
		for _, c := range cs {
			if c.Region == region {
				out = append(out, c)
			}
		}
		return out
	})
}

// SearchCountries matches query case-insensitively against name and code.
func (s *Service) SearchCountries(ctx context.Context, query string) ([]domain.Country, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.selectCountries(ctx, "search_countries", func(cs []domain.Country) []domain.Country {
		out := make([]domain.Country, 0, len(cs))
		for _, c := range cs {
			if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Code), q) {
				out = append(out, c)
			}
		}
		return out
	})
}

// FetchTopEmittingCountries returns the limit largest emitters.
func (s *Service) FetchTopEmittingCountries(ctx context.Context, limit int) ([]domain.Country, error) {
	if limit <= 0 {
		limit = DefaultTopCountries
	}
	return s.selectCountries(ctx, "fetch_top_emitting_countries", func(cs []domain.Country) []domain.Country {
		return analytics.TopN(cs, limit, func(c domain.Country) float64 { return c.Emissions })
	})
}

// FetchTopGDPCountries returns the limit largest economies.
func (s *Service) FetchTopGDPCountries(ctx context.Context, limit int) ([]domain.Country, error) {
	if limit <= 0 {
		limit = DefaultTopCountries
	}
	return s.selectCountries(ctx, "fetch_top_gdp_countries", func(cs []domain.Country) []domain.Country {
		return analytics.TopN(cs, limit, func(c domain.Country) float64 { return c.GDP })
	})
}

// FetchCountryByID returns one country; false when the id is unknown.
func (s *Service) FetchCountryByID(ctx context.Context, id string) (domain.Country, bool, error) {
	var (
		out   domain.Country
		found bool
	)
	err := s.run(ctx, "fetch_country", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_country"); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out, found = v.FindCountry(id)
			return nil
		})
	})
	return out, found, err
}

// FetchAvailableRegions returns the distinct regions, sorted.
func (s *Service) FetchAvailableRegions(ctx context.Context) ([]string, error) {
	var out []string
	err := s.run(ctx, "fetch_available_regions", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_available_regions"); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out = analytics.Regions(v.ListCountries())
			return nil
		})
	})
	return out, err
}

// FetchRegionStats aggregates countries by region.
func (s *Service) FetchRegionStats(ctx context.Context, order analytics.RegionOrder) ([]analytics.RegionStat, error) {
	countries, err := s.FetchCountries(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AggregateRegions(countries, order), nil
}

func (s *Service) selectCountries(ctx context.Context, op string, pick func([]domain.Country) []domain.Country) ([]domain.Country, error) {
	var out []domain.Country
	err := s.run(ctx, op, func(ctx context.Context) error {
		if err := s.settle(ctx, op); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out = pick(v.ListCountries())
			return nil
		})
	})
	return out, err
}
