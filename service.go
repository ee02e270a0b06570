package readiness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Report MIME types.
const (
	pdfContentType  = "application/pdf"
	htmlContentType = "text/html"
)

// Report is a generated, downloadable report.
type Report struct {
	Body        []byte
	Filename    string
	ContentType string
	Fallback    bool // true when Body is the degraded HTML document
}

// Service orchestrates the assessment-to-PDF pipeline. Each Service
// owns at most one browser instance; use ServicePool to bound the
// number of concurrent instances.
type Service struct {
	cfg      serviceConfig
	builder  reportBuilder
	fallback fallbackBuilder
	pdf      pdfConverter
	now      func() time.Time
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithOrganization).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			timeout:    defaultTimeout,
			settleWait: defaultSettleWait,
		},
		now: time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Builders depend on resolved config, so they are created after
	// options run unless a test injected them already.
	if s.builder == nil {
		s.builder = newHTMLReportBuilder(s.cfg.dateFormat, s.cfg.organization)
	}
	if s.fallback == nil {
		s.fallback = newHTMLFallbackBuilder(s.cfg.dateFormat)
	}
	if s.pdf == nil {
		s.pdf = newRodConverter(s.cfg.timeout, s.cfg.settleWait)
	}

	return s
}

// GenerateReport validates the result, builds the report HTML and
// rasterizes it to PDF.
//
// A rasterization failure (ErrPDFGeneration) degrades to the
// simplified HTML document with Report.Fallback set rather than
// failing the request. Launch and page-load failures, empty renderer
// output and context cancellation propagate as errors.
func (s *Service) GenerateReport(ctx context.Context, result AssessmentResult) (*Report, error) {
	if strings.TrimSpace(result.StudentName) == "" {
		return nil, ErrMissingStudentName
	}

	htmlContent := s.builder.BuildReport(result, s.now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfBytes, err := s.pdf.ToPDF(ctx, htmlContent)
	if err != nil {
		if errors.Is(err, ErrPDFGeneration) {
			return &Report{
				Body:        []byte(s.fallback.BuildFallback(result, s.now())),
				Filename:    fallbackFilename(result.StudentName),
				ContentType: htmlContentType,
				Fallback:    true,
			}, nil
		}
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	return &Report{
		Body:        pdfBytes,
		Filename:    pdfFilename(result.StudentName),
		ContentType: pdfContentType,
	}, nil
}

// Close releases resources (headless Chrome browser).
func (s *Service) Close() error {
	if s.pdf != nil {
		return s.pdf.Close()
	}
	return nil
}
