package pdfout

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry and the five paragraph styles are design constants, not
// runtime configuration: US Letter, 72pt margins all around.
const (
	pageMargin = 72.0
	bodyWidth  = 612.0 - 2*pageMargin // Letter width minus margins
)

type style struct {
	family      string
	styleFlags  string // "B" for bold
	size        float64
	leading     float64
	indent      float64
	spaceBefore float64
	spaceAfter  float64
	centered    bool
	r, g, b     int
}

var styles = map[Kind]style{
	KindTitle:    {family: "Helvetica", styleFlags: "B", size: 16, leading: 20, spaceAfter: 30 + 20, centered: true, r: 0x2c, g: 0x3e, b: 0x50},
	KindHeader:   {family: "Helvetica", size: 12, leading: 15, spaceAfter: 20, centered: true, r: 0x34, g: 0x49, b: 0x5e},
	KindSection:  {family: "Helvetica", styleFlags: "B", size: 14, leading: 18, spaceBefore: 20, spaceAfter: 20 + 10, r: 0x2c, g: 0x3e, b: 0x50},
	KindQuestion: {family: "Times", size: 12, leading: 16, indent: 20, spaceBefore: 12, spaceAfter: 12},
	KindAnswer:   {family: "Times", size: 12, leading: 16, indent: 40, spaceBefore: 6, spaceAfter: 12 + 6},
}

// Render serializes classified blocks to PDF bytes.
func Render(blocks []Block) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, blk := range blocks {
		st := styles[blk.Kind]

		doc.SetFont(st.family, st.styleFlags, st.size)
		doc.SetTextColor(st.r, st.g, st.b)

		if st.spaceBefore > 0 {
			doc.Ln(st.spaceBefore)
		}

		align := "L"
		if st.centered {
			align = "C"
		}

		doc.SetX(pageMargin + st.indent)
		doc.MultiCell(bodyWidth-st.indent, st.leading, tr(blk.Text), "", align, false)

		if st.spaceAfter > 0 {
			doc.Ln(st.spaceAfter)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("build PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// renderPlain is the fallback: every non-empty line in one normal style,
// losing heading and section distinctions. Plain text through the core
// fonts has no failure modes left.
func renderPlain(text string) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.MultiCell(bodyWidth, 15, tr(line), "", "L", false)
		doc.Ln(4)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("build fallback PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Convert renders text to a styled PDF, falling back to an unstyled
// rendering if the styled build fails. Render failures never reach the
// caller as long as the fallback succeeds.
func Convert(text string) ([]byte, error) {
	out, err := Render(Parse(text))
	if err == nil {
		return out, nil
	}
	fmt.Fprintf(os.Stderr, "warning: styled PDF rendering failed, using plain fallback: %v\n", err)
	return renderPlain(text)
}

// QuestionPaperFilename returns the download filename for a paper
// generated at t.
func QuestionPaperFilename(t time.Time) string {
	return fmt.Sprintf("question_paper_%s.pdf", t.Format("20060102_150405"))
}

// AnswerKeyFilename returns the download filename for an answer key
// generated at t.
func AnswerKeyFilename(t time.Time) string {
	return fmt.Sprintf("answer_key_%s.pdf", t.Format("20060102_150405"))
}
