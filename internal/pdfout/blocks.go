// Package pdfout converts the loosely structured model output into a
// styled, paginated PDF. The input is free text: classification is
// heuristic, line by line, and a line that defeats the heuristics still
// renders — just as plain body text.
package pdfout

import (
	"regexp"
	"strings"
)

// Kind tags a classified line with its paragraph style.
type Kind int

const (
	// KindTitle is a document banner ("Question Paper", "Answer Key").
	KindTitle Kind = iota
	// KindHeader is a centered header line (Time, Max. Marks, Instructions).
	KindHeader
	// KindSection is a section heading ("Section A: ...").
	KindSection
	// KindQuestion is a numbered question line.
	KindQuestion
	// KindAnswer is any other body line.
	KindAnswer
)

// Block is one classified line of the document.
type Block struct {
	Kind Kind
	Text string
}

var (
	mcqOptionRe   = regexp.MustCompile(`\b([a-d])\)`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
	questionStart = []string{"Q", "1.", "2.", "3.", "4.", "5."}
	headerStart   = []string{"Time:", "Max. Marks:", "Instructions:"}
)

// Parse classifies every non-empty line of text into a Block. Section
// lines toggle a sticky MCQ mode: question lines inside a Multiple
// Choice section get their option markers reformatted.
func Parse(text string) []Block {
	var blocks []Block
	inMCQ := false

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		line = cleanMarkup(line)

		switch {
		case strings.Contains(line, "Question Paper") || strings.Contains(line, "Answer Key"):
			blocks = append(blocks, Block{Kind: KindTitle, Text: line})

		case strings.Contains(line, "Section"):
			inMCQ = strings.Contains(line, "Multiple Choice")
			blocks = append(blocks, Block{Kind: KindSection, Text: line})

		case hasAnyPrefix(line, headerStart):
			blocks = append(blocks, Block{Kind: KindHeader, Text: line})

		case hasAnyPrefix(strings.TrimSpace(line), questionStart):
			if inMCQ {
				line = formatMCQ(line)
			}
			blocks = append(blocks, Block{Kind: KindQuestion, Text: line})

		default:
			blocks = append(blocks, Block{Kind: KindAnswer, Text: line})
		}
	}

	return blocks
}

// cleanMarkup strips the markup the model tends to emit. <b> tags pass
// through untouched; entities are decoded; markdown bold markers are
// dropped.
func cleanMarkup(line string) string {
	line = strings.ReplaceAll(line, "&lt;", "<")
	line = strings.ReplaceAll(line, "&gt;", ">")
	line = strings.ReplaceAll(line, "&amp;", "&")
	line = strings.ReplaceAll(line, "**", "")
	return line
}

// formatMCQ tidies MCQ option markers: a space after each bare a)-d)
// token, then runs of spaces collapsed to one.
func formatMCQ(line string) string {
	line = mcqOptionRe.ReplaceAllString(line, "$1) ")
	line = multiSpaceRe.ReplaceAllString(line, " ")
	return line
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
