package readiness

import (
	"math"
	"time"

	"github.com/alnah/go-readiness-report/internal/dateutil"
)

// Literal texts rendered when optional fields are absent.
const (
	DefaultStrengths       = "No strengths identified"
	DefaultGaps            = "No gaps identified"
	DefaultRecommendations = "No recommendations provided"
	DefaultReadinessLevel  = "Not Evaluated"
)

// DefaultOrganization is the branding line shown in the report header.
const DefaultOrganization = "Study Abroad Readiness Program"

// AssessmentResult is a normalized assessment record. It exists only
// for the duration of one report generation and is never persisted.
type AssessmentResult struct {
	StudentName     string
	Scores          map[string]float64 // keyed by category key, percent values
	OverallIndex    float64
	ReadinessLevel  string
	Strengths       string
	Gaps            string
	Recommendations string
	CountryFit      []string // ranked, best fit first
}

// scoreCategory pairs a wire key with its display label.
type scoreCategory struct {
	Key   string
	Label string
}

// scoreCategories lists the six assessment categories in report order.
// Score maps may carry any subset; unknown keys are ignored.
var scoreCategories = []scoreCategory{
	{"financialPlanning", "Financial Planning"},
	{"academicReadiness", "Academic Readiness"},
	{"careerAlignment", "Career Alignment"},
	{"personalCultural", "Personal & Cultural"},
	{"practicalReadiness", "Practical Readiness"},
	{"supportSystem", "Support System"},
}

// Score band thresholds. Bands pick the fill color of a score card.
const (
	bandExcellentMin = 80
	bandGoodMin      = 60
	bandAverageMin   = 40
)

// scoreBand maps a rounded percentage to its color band name.
func scoreBand(percent int) string {
	switch {
	case percent >= bandExcellentMin:
		return "excellent"
	case percent >= bandGoodMin:
		return "good"
	case percent >= bandAverageMin:
		return "average"
	default:
		return "weak"
	}
}

// roundPercent rounds a raw score to the displayed integer percentage.
// Values are not clamped: out-of-range inputs propagate as-is.
func roundPercent(v float64) int {
	return int(math.Round(v))
}

// matchDecayPerRank is the synthetic drop in match percentage between
// consecutive country-fit ranks.
const matchDecayPerRank = 15

// countryMatchPercent returns the synthetic match percentage for the
// country at the given zero-based rank: 100, 85, 70, ...
func countryMatchPercent(rank int) int {
	return 100 - matchDecayPerRank*rank
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout      time.Duration
	settleWait   time.Duration
	dateFormat   string
	organization string
}

// Default generation timings.
const (
	defaultTimeout    = 30 * time.Second
	defaultSettleWait = 3 * time.Second
)

// WithTimeout bounds each browser operation (page load, PDF render).
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("readiness: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithSettleWait bounds the post-load idle wait that lets late fonts
// and images land before rasterization. Panics if d <= 0.
func WithSettleWait(d time.Duration) Option {
	if d <= 0 {
		panic("readiness: WithSettleWait duration must be positive")
	}
	return func(s *Service) {
		s.cfg.settleWait = d
	}
}

// WithDateFormat sets the report date format using dateutil tokens
// (YYYY, MMMM, D, ...) or a preset name (iso, european, us, long).
// Panics on an unparsable format; validate config-sourced formats
// upstream with dateutil.ResolveFormat.
func WithDateFormat(format string) Option {
	if _, err := dateutil.ResolveFormat(format); err != nil {
		panic("readiness: WithDateFormat: " + err.Error())
	}
	return func(s *Service) {
		s.cfg.dateFormat = format
	}
}

// WithOrganization sets the branding line in the report header.
func WithOrganization(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.cfg.organization = name
		}
	}
}
