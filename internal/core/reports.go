package core

import (
	"context"
	"strings"

	"emissiondesk/internal/analytics"
	"emissiondesk/pkg/domain"
)

// DefaultRecentReports is the limit used when FetchRecentReports gets none.
const DefaultRecentReports = 5

// FetchReports returns every report. It never fails except on cancellation.
func (s *Service) FetchReports(ctx context.Context) ([]domain.Report, error) {
	var out []domain.Report
	err := s.run(ctx, "fetch_reports", func(ctx context.Context) error {
		if err := s.wait(ctx); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out = v.ListReports()
			return nil
		})
	})
	return out, err
}

// SaveReport creates a report when in.ID is empty and otherwise replaces the
// stored report with that id wholesale. The referenced company must exist.
func (s *Service) SaveReport(ctx context.Context, in domain.ReportInput) (domain.Report, error) {
	var saved domain.Report
	err := s.run(ctx, "save_report", func(ctx context.Context) error {
		if err := s.settle(ctx, "save_report"); err != nil {
			return err
		}
		report := domain.Report{
			ID:        in.ID,
			Title:     in.Title,
			CompanyID: in.CompanyID,
			DateTime:  in.DateTime,
			Content:   in.Content,
		}
		return s.apply(ctx, "save_report", func(tx domain.Transaction) error {
			if _, ok := tx.Snapshot().FindCompany(report.CompanyID); !ok {
				return domain.ErrNotFound{Entity: domain.EntityCompany, ID: report.CompanyID}
			}
			var err error
			if report.ID == "" {
				saved, err = tx.CreateReport(report)
				return err
			}
			saved, err = tx.UpdateReport(report.ID, func(r *domain.Report) error {
				*r = report
				return nil
			})
			return err
		})
	})
	return saved, err
}

// FetchReportsByCompany returns the reports filed under one company.
func (s *Service) FetchReportsByCompany(ctx context.Context, companyID string) ([]domain.Report, error) {
	return s.filterReports(ctx, "fetch_reports_by_company", func(r domain.Report) bool {
		return r.CompanyID == companyID
	})
}

// SearchReports matches query case-insensitively against title and content.
func (s *Service) SearchReports(ctx context.Context, query string) ([]domain.Report, error) {
	query = strings.TrimSpace(query)
	return s.filterReports(ctx, "search_reports", func(r domain.Report) bool {
		return analytics.MatchReport(r, query)
	})
}

// FetchRecentReports returns up to limit reports, newest first. A limit of
// zero or less uses DefaultRecentReports.
func (s *Service) FetchRecentReports(ctx context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = DefaultRecentReports
	}
	var out []domain.Report
	err := s.run(ctx, "fetch_recent_reports", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_recent_reports"); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			out = analytics.RecentReports(v.ListReports(), limit)
			return nil
		})
	})
	return out, err
}

// DeleteReport removes a report. Deleting an absent id succeeds and reports
// false.
func (s *Service) DeleteReport(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := s.run(ctx, "delete_report", func(ctx context.Context) error {
		if err := s.settle(ctx, "delete_report"); err != nil {
			return err
		}
		return s.apply(ctx, "delete_report", func(tx domain.Transaction) error {
			removed = tx.DeleteReport(id)
			return nil
		})
	})
	return removed, err
}

// FetchReportPreview returns the preview of one report with its company.
func (s *Service) FetchReportPreview(ctx context.Context, reportID string) (analytics.ReportPreview, error) {
	report, company, err := s.FetchReportWithCompany(ctx, reportID)
	if err != nil {
		return analytics.ReportPreview{}, err
	}
	return analytics.PreviewReport(report, company), nil
}

// FetchReportWithCompany resolves a report and the company it is filed under.
func (s *Service) FetchReportWithCompany(ctx context.Context, reportID string) (domain.Report, domain.Company, error) {
	var (
		report  domain.Report
		company domain.Company
	)
	err := s.run(ctx, "fetch_report", func(ctx context.Context) error {
		if err := s.settle(ctx, "fetch_report"); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			var ok bool
			if report, ok = v.FindReport(reportID); !ok {
				return domain.ErrNotFound{Entity: domain.EntityReport, ID: reportID}
			}
			if company, ok = v.FindCompany(report.CompanyID); !ok {
				return domain.ErrNotFound{Entity: domain.EntityCompany, ID: report.CompanyID}
			}
			return nil
		})
	})
	return report, company, err
}

func (s *Service) filterReports(ctx context.Context, op string, keep func(domain.Report) bool) ([]domain.Report, error) {
	out := []domain.Report{}
	err := s.run(ctx, op, func(ctx context.Context) error {
		if err := s.settle(ctx, op); err != nil {
			return err
		}
		return s.view(ctx, func(v domain.TransactionView) error {
			for _, r := range v.ListReports() {
				if keep(r) {
					out = append(out, r)
				}
			}
			return nil
		})
	})
	return out, err
}
