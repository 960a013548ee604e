package core

import (
	"context"
	"errors"

	"emissiondesk/internal/analytics"
	"emissiondesk/pkg/domain"
)

// FetchCompanies returns every company. It never fails except on cancellation.
func (s *Service) FetchCompanies(ctx context.Context) ([]domain.Company, error) {
	var out []domain.Company
	err := s.run(ctx, "fetch_companies", func(ctx context.Context) error {
		if err := s.wait(ctx); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out = v.ListCompanies()
			return nil
		})
	})
	return out, err
}

// FetchSubsidiaries returns the subsidiaries of one company.
func (s *Service) FetchSubsidiaries(ctx context.Context, companyID string) ([]domain.Subsidiary, error) {
	var out []domain.Subsidiary
	err := s.run(ctx, "fetch_subsidiaries", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_subsidiaries"); err != nil {
			return err
		}
		company, err := s.findCompany(ctx, companyID)
		if err != nil {
			return err
		}
		out = company.Subsidiaries
		if out == nil {
			out = []domain.Subsidiary{}
		}
		return nil
	})
	return out, err
}

// FetchCompanyTotalEmissions returns the company's monthly rollup: its own
// rows plus all subsidiary rows, summed by period in ascending order.
func (s *Service) FetchCompanyTotalEmissions(ctx context.Context, companyID string) ([]domain.GhgEmission, error) {
	var out []domain.GhgEmission
	err := s.run(ctx, "fetch_company_total_emissions", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_company_total_emissions"); err != nil {
			return err
		}
		company, err := s.findCompany(ctx, companyID)
		if err != nil {
			return err
		}
		out = analytics.MonthlyRollup(company)
		return nil
	})
	return out, err
}

// CreateCompany stores a new company under a freshly generated id.
func (s *Service) CreateCompany(ctx context.Context, company domain.Company) (domain.Company, error) {
	var created domain.Company
	err := s.run(ctx, "create_company", func(ctx context.Context) error {
		if err := s.settle(ctx, "create_company"); err != nil {
			return err
		}
		company.ID = ""
		return s.apply(ctx, "create_company", func(tx domain.Transaction) error {
			var err error
			created, err = tx.CreateCompany(company)
			return err
		})
	})
	return created, err
}

// UpdateCompany merges patch into the company as it was when the call began
// and, after the delay, stores the merged record whole. Concurrent updates
// to one company are therefore last-write-wins. It reports false when the
// company does not exist.
func (s *Service) UpdateCompany(ctx context.Context, id string, patch domain.CompanyPatch) (domain.Company, bool, error) {
	var (
		updated domain.Company
		found   bool
	)
	err := s.run(ctx, "update_company", func(ctx context.Context) error {
		var (
			base   domain.Company
			exists bool
		)
		if err := s.view(ctx, func(v domain.TransactionView) error {
			base, exists = v.FindCompany(id)
			return nil
		}); err != nil {
			return err
		}
		if err := s.settle(ctx, "update_company"); err != nil {
			return err
		}
		if !exists {
			return nil
		}
		merged := patch.Apply(base)
		err := s.apply(ctx, "update_company", func(tx domain.Transaction) error {
			var err error
			updated, err = tx.UpdateCompany(id, func(c *domain.Company) error {
				*c = merged
				return nil
			})
			return err
		})
		if isNotFound(err) {
			return nil
		}
		found = err == nil
		return err
	})
	return updated, found, err
}

// DeleteCompany removes a company. Deleting an absent id succeeds and
// reports false.
func (s *Service) DeleteCompany(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.run(ctx, "delete_company", func(ctx context.Context) error {
		if err := s.settle(ctx, "delete_company"); err != nil {
			return err
		}
		return s.apply(ctx, "delete_company", func(tx domain.Transaction) error {
			removed = tx.DeleteCompany(id)
			return nil
		})
	})
	return removed, err
}

// FetchCompanyViews returns the per-company table rows.
func (s *Service) FetchCompanyViews(ctx context.Context) ([]analytics.CompanyView, error) {
	companies, err := s.FetchCompanies(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.CompanyViews(companies), nil
}

func (s *Service) findCompany(ctx context.Context, id string) (domain.Company, error) {
	var (
		company domain.Company
		ok      bool
	)
	if err := s.view(ctx, func(v domain.TransactionView) error {
		company, ok = v.FindCompany(id)
		return nil
	}); err != nil {
		return domain.Company{}, err
	}
	if !ok {
		return domain.Company{}, domain.ErrNotFound{Entity: domain.EntityCompany, ID: id}
	}
	return company, nil
}

func isNotFound(err error) bool {
	var nf domain.ErrNotFound
	return errors.As(err, &nf)
}
