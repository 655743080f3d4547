// Package extract pulls plain syllabus text out of an uploaded PDF.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxChars clamps extracted syllabus text; anything longer is truncated
// with a marker. Prompts don't benefit from whole textbooks.
const MaxChars = 20000

// FromPDF extracts and normalizes the text content of the PDF at path.
func FromPDF(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	return fromReader(f, info.Size())
}

// FromBytes extracts text from in-memory PDF data.
func FromBytes(data []byte) (string, error) {
	return fromReader(bytes.NewReader(data), int64(len(data)))
}

func fromReader(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("read PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	return normalize(buf.String()), nil
}

// normalize collapses all whitespace runs to single spaces and clamps
// oversized text.
func normalize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) > MaxChars {
		text = text[:MaxChars] + "\n...[truncated]..."
	}
	return text
}
