package readiness

import "testing"

func TestSlugifyName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple name", input: "Jane Doe", want: "jane-doe"},
		{name: "whitespace run", input: "Jane   Doe", want: "jane-doe"},
		{name: "leading and trailing spaces", input: "  Jane Doe  ", want: "jane-doe"},
		{name: "tabs and newlines", input: "Jane\tvan\nDoe", want: "jane-van-doe"},
		{name: "already lowercase", input: "jane", want: "jane"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugifyName(tt.input); got != tt.want {
				t.Errorf("SlugifyName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAttachmentFilenames(t *testing.T) {
	if got := pdfFilename("Jane Doe"); got != "psychometric-report-jane-doe.pdf" {
		t.Errorf("pdfFilename = %q", got)
	}
	if got := fallbackFilename("Jane Doe"); got != "study-abroad-report-jane-doe.html" {
		t.Errorf("fallbackFilename = %q", got)
	}
}
