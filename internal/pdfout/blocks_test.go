package pdfout

import (
	"strings"
	"testing"
	"time"
)

func TestParse_SkipsEmptyLines(t *testing.T) {
	blocks := Parse("Q1. First?\n\n\nQ2. Second?\n")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
}

func TestParse_Classification(t *testing.T) {
	input := strings.Join([]string{
		"Question Paper",
		"Time: 3 Hours",
		"Instructions: read carefully",
		"Section A: Multiple Choice Questions",
		"Q1. Capital of France? a)Paris b)London",
		"The answer is explained below.",
		"Answer Key",
	}, "\n")

	blocks := Parse(input)
	wantKinds := []Kind{KindTitle, KindHeader, KindHeader, KindSection, KindQuestion, KindAnswer, KindTitle}

	if len(blocks) != len(wantKinds) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if blocks[i].Kind != k {
			t.Errorf("block %d (%q): kind = %v, want %v", i, blocks[i].Text, blocks[i].Kind, k)
		}
	}
}

func TestParse_MCQModeReformatsOptions(t *testing.T) {
	input := strings.Join([]string{
		"Section A: Multiple Choice Questions",
		"Q1. Capital of France? a)Paris b)London c)Rome d)Berlin",
	}, "\n")

	blocks := Parse(input)
	got := blocks[1].Text
	want := "Q1. Capital of France? a) Paris b) London c) Rome d) Berlin"
	if got != want {
		t.Errorf("MCQ reformat:\n got %q\nwant %q", got, want)
	}
}

func TestParse_MCQModeEndsAtNextSection(t *testing.T) {
	input := strings.Join([]string{
		"Section A: Multiple Choice Questions",
		"Q1. First? a)x b)y",
		"Section B: Short Answer Questions",
		"Q1. Raw line with a)unspaced option",
	}, "\n")

	blocks := Parse(input)
	if blocks[3].Text != "Q1. Raw line with a)unspaced option" {
		t.Errorf("non-MCQ section line was reformatted: %q", blocks[3].Text)
	}
}

func TestParse_MCQReformatCollapsesSpaces(t *testing.T) {
	input := "Section A: Multiple Choice Questions\nQ1. Pick one   a)first    b)second"
	blocks := Parse(input)
	if strings.Contains(blocks[1].Text, "  ") {
		t.Errorf("expected runs of spaces collapsed, got %q", blocks[1].Text)
	}
}

func TestCleanMarkup(t *testing.T) {
	got := cleanMarkup("**Bold** text with &lt;tags&gt; &amp; entities")
	want := "Bold text with <tags> & entities"
	if got != want {
		t.Errorf("cleanMarkup = %q, want %q", got, want)
	}
}

func TestParse_QuestionPrefixes(t *testing.T) {
	for _, prefix := range []string{"Q5.", "1.", "2.", "3.", "4.", "5."} {
		blocks := Parse(prefix + " some question")
		if blocks[0].Kind != KindQuestion {
			t.Errorf("line starting %q classified as %v, want KindQuestion", prefix, blocks[0].Kind)
		}
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	blocks := Parse("Question Paper\nSection A: Multiple Choice Questions\nQ1. What? a)x b)y")
	out, err := Render(blocks)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.HasPrefix(string(out), "%PDF-") {
		t.Error("output is not a PDF")
	}
}

func TestConvert_NeverEmptyOnPlainText(t *testing.T) {
	out, err := Convert("just a line of text\nand another")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if len(out) == 0 {
		t.Error("expected non-empty PDF output")
	}
}

func TestFilenames(t *testing.T) {
	ts := time.Date(2025, 3, 1, 14, 30, 5, 0, time.UTC)
	if got := QuestionPaperFilename(ts); got != "question_paper_20250301_143005.pdf" {
		t.Errorf("QuestionPaperFilename = %q", got)
	}
	if got := AnswerKeyFilename(ts); got != "answer_key_20250301_143005.pdf" {
		t.Errorf("AnswerKeyFilename = %q", got)
	}
}
