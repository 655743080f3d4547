package extract

import (
	"strings"
	"testing"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	got := normalize("Process   scheduling\n\nand\tcontext switching")
	want := "Process scheduling and context switching"
	if got != want {
		t.Errorf("normalize = %q, want %q", got, want)
	}
}

func TestNormalize_ClampsOversizedText(t *testing.T) {
	got := normalize(strings.Repeat("syllabus ", MaxChars))
	if len(got) > MaxChars+40 {
		t.Errorf("expected clamped text, got %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...[truncated]...") {
		t.Error("expected truncation marker")
	}
}

func TestFromBytes_RejectsNonPDF(t *testing.T) {
	if _, err := FromBytes([]byte("plain text, not a pdf")); err == nil {
		t.Error("expected error for non-PDF input")
	}
}
