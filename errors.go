package readiness

import "errors"

// Sentinel errors for report generation.
var (
	ErrMissingStudentName = errors.New("missing student name")
	ErrPDFGeneration      = errors.New("PDF generation failed")
	ErrEmptyPDF           = errors.New("PDF renderer produced empty output")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
)
