package analytics

import (
	"math"
	"strings"
	"unicode/utf8"

	"emissiondesk/pkg/domain"
)

// ReportPreview is the summary shown before a report is exported.
type ReportPreview struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Country        string `json:"country"`
	Industry       string `json:"industry"`
	BusinessType   string `json:"businessType"`
	SubmitDate     string `json:"submitDate"`
	Content        string `json:"content"`
	WordCount      int    `json:"wordCount"`
	CharacterCount int    `json:"characterCount"`
}

// PreviewReport builds the preview for r filed under c. SubmitDate is the
// report stamp normalized to YYYY-MM-DD when it parses, else kept verbatim.
func PreviewReport(r domain.Report, c domain.Company) ReportPreview {
	submitted := r.DateTime
	if t, ok := domain.ParseReportDate(r.DateTime); ok {
		submitted = t.Format("2006-01-02")
	}
	return ReportPreview{
		Title:          r.Title,
		Company:        c.Name,
		Country:        c.Country,
		Industry:       c.Industry,
		BusinessType:   c.BusinessType,
		SubmitDate:     submitted,
		Content:        r.Content,
		WordCount:      len(strings.Fields(r.Content)),
		CharacterCount: utf8.RuneCountInString(r.Content),
	}
}

// MatchReport reports whether query is a case-insensitive substring of the
// report title or content.
func MatchReport(r domain.Report, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Content), q)
}

// RecentReports orders reports by date, newest first, and keeps the first
// limit. Reports whose stamp does not parse sort last in input order.
func RecentReports(reports []domain.Report, limit int) []domain.Report {
	return TopN(reports, limit, func(r domain.Report) float64 {
		t, ok := domain.ParseReportDate(r.DateTime)
		if !ok {
			return math.Inf(-1)
		}
		return float64(t.Unix())
	})
}
