package readiness

import "strings"

// Attachment filename templates.
const (
	pdfFilenamePrefix      = "psychometric-report-"
	fallbackFilenamePrefix = "study-abroad-report-"
)

// SlugifyName lowercases a student name and collapses whitespace runs
// into single hyphens, producing a safe attachment filename fragment.
// "Jane Doe" becomes "jane-doe".
func SlugifyName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// pdfFilename returns the attachment name for a successful PDF render.
func pdfFilename(studentName string) string {
	return pdfFilenamePrefix + SlugifyName(studentName) + ".pdf"
}

// fallbackFilename returns the attachment name for the HTML fallback.
func fallbackFilename(studentName string) string {
	return fallbackFilenamePrefix + SlugifyName(studentName) + ".html"
}
