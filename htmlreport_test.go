package readiness

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, time.August, 2, 9, 0, 0, 0, time.UTC)

func TestBuildReportStudentAndDate(t *testing.T) {
	b := newHTMLReportBuilder("", "")

	html := b.BuildReport(AssessmentResult{StudentName: "Jane Doe"}, testNow)

	if !strings.Contains(html, "Jane Doe") {
		t.Error("report missing student name")
	}
	if !strings.Contains(html, "August 2, 2026") {
		t.Error("report missing long-format date")
	}
	if !strings.Contains(html, DefaultOrganization) {
		t.Error("report missing default organization branding")
	}
}

func TestBuildReportEscapesStudentName(t *testing.T) {
	b := newHTMLReportBuilder("", "")

	html := b.BuildReport(AssessmentResult{StudentName: `<img src=x>`}, testNow)

	if strings.Contains(html, "<img src=x>") {
		t.Error("student name was not escaped")
	}
}

func TestBuildReportNarrativeDefaults(t *testing.T) {
	b := newHTMLReportBuilder("", "")

	html := b.BuildReport(AssessmentResult{StudentName: "Jane Doe"}, testNow)

	for _, want := range []string{DefaultStrengths, DefaultGaps, DefaultRecommendations, DefaultReadinessLevel} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing default text %q", want)
		}
	}
}

func TestBuildReportScoreCards(t *testing.T) {
	b := newHTMLReportBuilder("", "")

	tests := []struct {
		name        string
		scores      map[string]float64
		contains    []string
		notContains []string
	}{
		{
			name:   "excellent band at boundary",
			scores: map[string]float64{"academicReadiness": 80},
			contains: []string{
				"Academic Readiness",
				"band-excellent",
				"width: 80%",
			},
		},
		{
			name:        "good band just under boundary",
			scores:      map[string]float64{"academicReadiness": 79},
			contains:    []string{"band-good"},
			notContains: []string{"band-excellent"},
		},
		{
			name:        "average band",
			scores:      map[string]float64{"financialPlanning": 59},
			contains:    []string{"Financial Planning", "band-average"},
			notContains: []string{"band-good"},
		},
		{
			name:        "weak band",
			scores:      map[string]float64{"supportSystem": 39},
			contains:    []string{"Support System", "band-weak"},
			notContains: []string{"band-average"},
		},
		{
			name:        "out-of-range score propagates unclamped",
			scores:      map[string]float64{"careerAlignment": 150},
			contains:    []string{"width: 150%", "band-excellent"},
			notContains: []string{"width: 100%"},
		},
		{
			name:        "absent categories are omitted",
			scores:      map[string]float64{"academicReadiness": 70},
			contains:    []string{"Academic Readiness"},
			notContains: []string{"Practical Readiness", "Personal &amp; Cultural"},
		},
		{
			name:        "no scores hides the section",
			scores:      nil,
			notContains: []string{"Category Scores"},
		},
		{
			name:        "unknown score keys are ignored",
			scores:      map[string]float64{"horoscope": 99},
			notContains: []string{"horoscope", "Category Scores"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := b.BuildReport(AssessmentResult{StudentName: "Jane Doe", Scores: tt.scores}, testNow)
			for _, want := range tt.contains {
				if !strings.Contains(html, want) {
					t.Errorf("report missing %q", want)
				}
			}
			for _, bad := range tt.notContains {
				if strings.Contains(html, bad) {
					t.Errorf("report must not contain %q", bad)
				}
			}
		})
	}
}

func TestBuildReportScoreCategoryOrder(t *testing.T) {
	b := newHTMLReportBuilder("", "")
	scores := map[string]float64{
		"supportSystem":      50,
		"financialPlanning":  50,
		"academicReadiness":  50,
		"careerAlignment":    50,
		"personalCultural":   50,
		"practicalReadiness": 50,
	}

	html := b.BuildReport(AssessmentResult{StudentName: "Jane Doe", Scores: scores}, testNow)

	labels := []string{
		"Financial Planning",
		"Academic Readiness",
		"Career Alignment",
		"Personal &amp; Cultural",
		"Practical Readiness",
		"Support System",
	}
	last := -1
	for _, label := range labels {
		idx := strings.Index(html, label)
		if idx == -1 {
			t.Fatalf("report missing category %q", label)
		}
		if idx < last {
			t.Errorf("category %q out of order", label)
		}
		last = idx
	}
}

func TestBuildReportCountryFit(t *testing.T) {
	b := newHTMLReportBuilder("", "")
	result := AssessmentResult{
		StudentName: "Jane Doe",
		CountryFit:  []string{"Canada", "Germany", "Atlantis"},
	}

	html := b.BuildReport(result, testNow)

	for _, want := range []string{
		"100% match",
		"85% match",
		"70% match",
		"🇨🇦",
		"🇩🇪",
		unknownCountryFlag,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if !strings.Contains(html, "#1") || !strings.Contains(html, "#3") {
		t.Error("report missing country ranks")
	}
}

func TestBuildReportNoCountriesHidesSection(t *testing.T) {
	b := newHTMLReportBuilder("", "")

	html := b.BuildReport(AssessmentResult{StudentName: "Jane Doe"}, testNow)

	if strings.Contains(html, "Country Fit") {
		t.Error("empty country fit must omit the section")
	}
}

func TestBuildReportOverallIndexRounded(t *testing.T) {
	b := newHTMLReportBuilder("", "")

	html := b.BuildReport(AssessmentResult{StudentName: "Jane Doe", OverallIndex: 71.6}, testNow)

	if !strings.Contains(html, ">72%<") {
		t.Errorf("report missing rounded overall index, got: %s", snippet(html, "overall-index"))
	}
}

func TestBuildReportIdempotentForFixedTime(t *testing.T) {
	b := newHTMLReportBuilder("", "")
	result := AssessmentResult{
		StudentName: "Jane Doe",
		Scores:      map[string]float64{"academicReadiness": 80},
		CountryFit:  []string{"Canada"},
	}

	first := b.BuildReport(result, testNow)
	second := b.BuildReport(result, testNow)
	if first != second {
		t.Error("identical input and time produced different HTML")
	}

	later := b.BuildReport(result, testNow.AddDate(0, 0, 1))
	if first == later {
		t.Error("date change did not affect output")
	}
}

func TestBuildReportCustomOrganizationAndFormat(t *testing.T) {
	b := newHTMLReportBuilder("iso", "Acme Study Abroad")

	html := b.BuildReport(AssessmentResult{StudentName: "Jane Doe"}, testNow)

	if !strings.Contains(html, "Acme Study Abroad") {
		t.Error("report missing custom organization")
	}
	if !strings.Contains(html, "2026-08-02") {
		t.Error("report missing iso-formatted date")
	}
}

// snippet returns the region around the first occurrence of marker for
// readable failure messages.
func snippet(html, marker string) string {
	idx := strings.Index(html, marker)
	if idx == -1 {
		return fmt.Sprintf("(marker %q not found)", marker)
	}
	end := idx + 120
	if end > len(html) {
		end = len(html)
	}
	return html[idx:end]
}
