// Package export renders a report together with its company figures and
// stores the result as an artifact in a blob store.
package export

import (
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	texttemplate "text/template"

	"github.com/dustin/go-humanize"

	"emissiondesk/internal/analytics"
	"emissiondesk/pkg/domain"
)

// Format selects the rendering.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat accepts "text", "txt" and "html" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	}
	return "", domain.ErrInvalidInput{Field: "format", Reason: fmt.Sprintf("%q is not text or html", s)}
}

// Extension returns the file extension for f.
func (f Format) Extension() string {
	if f == FormatHTML {
		return "html"
	}
	return "txt"
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// Document is the data handed to the templates.
type Document struct {
	Preview         analytics.ReportPreview
	ReportID        string
	CompanyID       string
	Employees       int
	GroupEmissions  float64
	EmissionsChange float64
	Rollup          []domain.GhgEmission
	Subsidiaries    []domain.Subsidiary
}

// NewDocument collects the figures rendered for report r filed under c.
func NewDocument(r domain.Report, c domain.Company) Document {
	rollup := analytics.MonthlyRollup(c)
	return Document{
		Preview:         analytics.PreviewReport(r, c),
		ReportID:        r.ID,
		CompanyID:       c.ID,
		Employees:       analytics.TotalEmployees(c),
		GroupEmissions:  analytics.LatestGroupEmissions(c),
		EmissionsChange: analytics.PeriodChange(rollup),
		Rollup:          rollup,
		Subsidiaries:    c.Subsidiaries,
	}
}

func tonnes(v float64) string { return humanize.Commaf(v) }

func percent(v float64) string { return fmt.Sprintf("%+.1f%%", v) }

func count(n int) string { return humanize.Comma(int64(n)) }

var funcs = map[string]any{
	"tonnes":  tonnes,
	"percent": percent,
	"count":   count,
}

const textLayout = `{{.Preview.Title}}
{{.Preview.Company}} ({{.Preview.Country}}) · {{.Preview.Industry}} · {{.Preview.BusinessType}}
Submitted {{.Preview.SubmitDate}} · {{count .Preview.WordCount}} words · {{count .Preview.CharacterCount}} characters

{{.Preview.Content}}

Employees (group): {{count .Employees}}
Latest group emissions: {{tonnes .GroupEmissions}} tCO2e
Change vs previous period: {{percent .EmissionsChange}}

Monthly emissions (company + subsidiaries):
{{range .Rollup}}  {{.Period}}  {{tonnes .Emissions}}
{{else}}  no emissions recorded
{{end}}{{if .Subsidiaries}}
Subsidiaries:
{{range .Subsidiaries}}  {{.Name}} ({{.Country}}) {{printf "%.1f" .OwnershipPercentage}}% owned
{{end}}{{end}}`

const htmlLayout = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>{{.Preview.Title}}</title></head>
<body>
<article data-report="{{.ReportID}}" data-company="{{.CompanyID}}">
<h1>{{.Preview.Title}}</h1>
<p class="meta">{{.Preview.Company}} ({{.Preview.Country}}) · {{.Preview.Industry}} · submitted {{.Preview.SubmitDate}}</p>
<section class="content"><p>{{.Preview.Content}}</p></section>
<dl>
<dt>Employees</dt><dd>{{count .Employees}}</dd>
<dt>Latest group emissions</dt><dd>{{tonnes .GroupEmissions}} tCO2e</dd>
<dt>Change vs previous period</dt><dd>{{percent .EmissionsChange}}</dd>
</dl>
<table>
<thead><tr><th>Period</th><th>Emissions</th></tr></thead>
<tbody>
{{range .Rollup}}<tr><td>{{.Period}}</td><td>{{tonnes .Emissions}}</td></tr>
{{end}}</tbody>
</table>
</article>
</body>
</html>
`

var (
	textTmpl = texttemplate.Must(texttemplate.New("report.txt").Funcs(funcs).Parse(textLayout))
	htmlTmpl = htmltemplate.Must(htmltemplate.New("report.html").Funcs(funcs).Parse(htmlLayout))
)

// Render writes doc to w in format f. HTML output is escaped.
func Render(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatText:
		return textTmpl.Execute(w, doc)
	case FormatHTML:
		return htmlTmpl.Execute(w, doc)
	}
	return domain.ErrInvalidInput{Field: "format", Reason: fmt.Sprintf("%q is not text or html", f)}
}
