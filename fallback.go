package readiness

import (
	"bytes"
	"html/template"
	"time"

	"github.com/alnah/go-readiness-report/internal/dateutil"
)

// FallbackNote is the literal text embedded in the degraded HTML
// document when PDF rasterization fails.
const FallbackNote = "PDF rendering was unavailable. This simplified report was generated instead."

// fallbackBuilder produces the minimal HTML attachment returned when
// the PDF step fails.
type fallbackBuilder interface {
	BuildFallback(result AssessmentResult, now time.Time) string
}

// Compile-time interface check
var _ fallbackBuilder = (*htmlFallbackBuilder)(nil)

// fallbackData is the fallback template payload.
type fallbackData struct {
	StudentName     string
	Date            string
	OverallIndex    int
	ReadinessLevel  string
	Strengths       string
	Recommendations string
	Note            string
}

// htmlFallbackBuilder renders the simplified inline report.
type htmlFallbackBuilder struct {
	tmpl       *template.Template
	dateLayout string
}

// newHTMLFallbackBuilder mirrors newHTMLReportBuilder's panic policy
// for invalid formats.
func newHTMLFallbackBuilder(dateFormat string) *htmlFallbackBuilder {
	layout, err := dateutil.ResolveFormat(dateFormat)
	if err != nil {
		panic("readiness: fallback date format: " + err.Error())
	}
	return &htmlFallbackBuilder{
		tmpl:       template.Must(template.New("fallback").Parse(fallbackTemplate)),
		dateLayout: layout,
	}
}

// BuildFallback assembles the degraded document. Like the full report
// builder, it applies defaults and never fails.
func (b *htmlFallbackBuilder) BuildFallback(result AssessmentResult, now time.Time) string {
	r := withDefaults(result)

	data := fallbackData{
		StudentName:     r.StudentName,
		Date:            now.Format(b.dateLayout),
		OverallIndex:    roundPercent(r.OverallIndex),
		ReadinessLevel:  r.ReadinessLevel,
		Strengths:       r.Strengths,
		Recommendations: r.Recommendations,
		Note:            FallbackNote,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data); err != nil {
		panic("readiness: executing fallback template: " + err.Error())
	}
	return buf.String()
}

const fallbackTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>Study Abroad Readiness Report</title>
<style>
  body { font-family: Arial, sans-serif; color: #1f2937; max-width: 640px; margin: 32px auto; }
  h1 { font-size: 22px; }
  .note { background: #fef3c7; border: 1px solid #f59e0b; border-radius: 6px; padding: 10px; margin: 16px 0; }
  dt { font-weight: 700; margin-top: 12px; }
  dd { margin: 4px 0 0; }
</style>
</head>
<body>
<h1>Study Abroad Readiness Report</h1>
<p>Prepared for <strong>{{.StudentName}}</strong> on {{.Date}}</p>
<div class="note">{{.Note}}</div>
<dl>
  <dt>Readiness Index</dt><dd>{{.OverallIndex}}%</dd>
  <dt>Readiness Level</dt><dd>{{.ReadinessLevel}}</dd>
  <dt>Strengths</dt><dd>{{.Strengths}}</dd>
  <dt>Recommendations</dt><dd>{{.Recommendations}}</dd>
</dl>
</body>
</html>
`
