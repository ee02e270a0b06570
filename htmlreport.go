package readiness

import (
	"bytes"
	"html/template"
	"time"

	"github.com/alnah/go-readiness-report/internal/dateutil"
)

// reportBuilder defines the contract for turning an assessment result
// into a complete HTML document. Building is pure and never fails.
type reportBuilder interface {
	BuildReport(result AssessmentResult, now time.Time) string
}

// Compile-time interface check
var _ reportBuilder = (*htmlReportBuilder)(nil)

// reportData is the root template payload.
type reportData struct {
	Organization    string
	StudentName     string
	Date            string
	OverallIndex    int
	ReadinessLevel  string
	Scores          []scoreCard
	Strengths       template.HTML
	Gaps            template.HTML
	Recommendations template.HTML
	Countries       []countryCard
}

// scoreCard is one labeled bar-chart card.
type scoreCard struct {
	Label   string
	Percent int
	Band    string
}

// countryCard is one ranked country-fit card.
type countryCard struct {
	Rank    int // 1-based for display
	Name    string
	Flag    string
	Percent int
}

// htmlReportBuilder renders the full report page from the embedded
// template. One instance is safe for concurrent use.
type htmlReportBuilder struct {
	tmpl         *template.Template
	narrative    narrativeRenderer
	dateLayout   string
	organization string
}

// newHTMLReportBuilder creates a builder for the given date format
// (dateutil tokens or preset; empty means the long locale format) and
// organization branding. Panics on an invalid format or template
// (programmer error; service options validate formats up front).
func newHTMLReportBuilder(dateFormat, organization string) *htmlReportBuilder {
	layout, err := dateutil.ResolveFormat(dateFormat)
	if err != nil {
		panic("readiness: report date format: " + err.Error())
	}
	if organization == "" {
		organization = DefaultOrganization
	}
	return &htmlReportBuilder{
		tmpl:         template.Must(template.New("report").Parse(reportTemplate)),
		narrative:    newGoldmarkNarrative(),
		dateLayout:   layout,
		organization: organization,
	}
}

// BuildReport assembles the report HTML. Absent optional fields render
// their documented fallback texts; output is identical across calls
// except for the date derived from now.
func (b *htmlReportBuilder) BuildReport(result AssessmentResult, now time.Time) string {
	r := withDefaults(result)

	data := reportData{
		Organization:    b.organization,
		StudentName:     r.StudentName,
		Date:            now.Format(b.dateLayout),
		OverallIndex:    roundPercent(r.OverallIndex),
		ReadinessLevel:  r.ReadinessLevel,
		Strengths:       b.narrative.Render(r.Strengths),
		Gaps:            b.narrative.Render(r.Gaps),
		Recommendations: b.narrative.Render(r.Recommendations),
	}

	for _, cat := range scoreCategories {
		raw, ok := r.Scores[cat.Key]
		if !ok {
			continue
		}
		percent := roundPercent(raw)
		data.Scores = append(data.Scores, scoreCard{
			Label:   cat.Label,
			Percent: percent,
			Band:    scoreBand(percent),
		})
	}

	for i, name := range r.CountryFit {
		data.Countries = append(data.Countries, countryCard{
			Rank:    i + 1,
			Name:    name,
			Flag:    countryFlag(name),
			Percent: countryMatchPercent(i),
		})
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		// The template only touches static fields; Execute cannot fail
		// on well-formed data, so this is a programmer error.
		panic("readiness: executing report template: " + err.Error())
	}
	return buf.String()
}

// reportTemplate is the single-page report layout. Bar widths are not
// clamped; out-of-range scores render wider than the track.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>Study Abroad Readiness Report</title>
<style>
  * { box-sizing: border-box; margin: 0; padding: 0; }
  body { font-family: 'Inter', 'Helvetica Neue', Arial, sans-serif; color: #1f2937; font-size: 13px; }
  .report-header { border-bottom: 3px solid #1d4ed8; padding-bottom: 16px; margin-bottom: 24px; }
  .brand { color: #1d4ed8; font-weight: 700; letter-spacing: 0.08em; text-transform: uppercase; font-size: 11px; }
  h1 { font-size: 26px; margin-top: 6px; }
  h2 { font-size: 16px; margin-bottom: 10px; color: #111827; }
  .student-line { color: #6b7280; margin-top: 4px; }
  section { margin-bottom: 24px; page-break-inside: avoid; }
  .overall { display: flex; align-items: baseline; gap: 12px; background: #eff6ff; border-radius: 8px; padding: 16px; }
  .overall-index { font-size: 34px; font-weight: 700; color: #1d4ed8; }
  .readiness-level { font-size: 15px; color: #374151; }
  .score-grid { display: flex; flex-wrap: wrap; gap: 12px; }
  .score-card { flex: 1 1 45%; border: 1px solid #e5e7eb; border-radius: 8px; padding: 12px; }
  .score-label { color: #374151; font-weight: 600; }
  .score-value { font-size: 18px; font-weight: 700; margin: 4px 0; }
  .bar-track { background: #f3f4f6; border-radius: 4px; height: 8px; overflow: hidden; }
  .bar-fill { height: 8px; border-radius: 4px; }
  .band-excellent { background: #16a34a; }
  .band-good { background: #2563eb; }
  .band-average { background: #f59e0b; }
  .band-weak { background: #dc2626; }
  .narrative { border-left: 3px solid #d1d5db; padding-left: 12px; color: #374151; }
  .country-card { display: flex; align-items: center; gap: 10px; border: 1px solid #e5e7eb; border-radius: 8px; padding: 10px 12px; margin-bottom: 8px; }
  .country-rank { color: #9ca3af; font-weight: 700; }
  .country-flag { font-size: 18px; }
  .country-name { font-weight: 600; flex: 1; }
  .country-match { color: #1d4ed8; font-weight: 700; }
  footer { border-top: 1px solid #e5e7eb; margin-top: 28px; padding-top: 10px; color: #9ca3af; font-size: 11px; }
</style>
</head>
<body>
<header class="report-header">
  <div class="brand">{{.Organization}}</div>
  <h1>Study Abroad Readiness Report</h1>
  <p class="student-line">Prepared for <strong>{{.StudentName}}</strong> on {{.Date}}</p>
</header>

<section class="overall">
  <div class="overall-index">{{.OverallIndex}}%</div>
  <div class="readiness-level">Readiness Index &mdash; {{.ReadinessLevel}}</div>
</section>
{{if .Scores}}
<section>
  <h2>Category Scores</h2>
  <div class="score-grid">
  {{range .Scores}}  <div class="score-card">
      <div class="score-label">{{.Label}}</div>
      <div class="score-value">{{.Percent}}%</div>
      <div class="bar-track"><div class="bar-fill band-{{.Band}}" style="width: {{.Percent}}%"></div></div>
    </div>
  {{end}}</div>
</section>
{{end}}
<section>
  <h2>Strengths</h2>
  <div class="narrative">{{.Strengths}}</div>
</section>

<section>
  <h2>Gaps</h2>
  <div class="narrative">{{.Gaps}}</div>
</section>

<section>
  <h2>Recommendations</h2>
  <div class="narrative">{{.Recommendations}}</div>
</section>
{{if .Countries}}
<section>
  <h2>Country Fit</h2>
{{range .Countries}}  <div class="country-card">
    <span class="country-rank">#{{.Rank}}</span>
    <span class="country-flag">{{.Flag}}</span>
    <span class="country-name">{{.Name}}</span>
    <span class="country-match">{{.Percent}}% match</span>
  </div>
{{end}}</section>
{{end}}
<footer>Generated by {{.Organization}} on {{.Date}}</footer>
</body>
</html>
`
