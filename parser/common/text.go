package common

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/dslipak/pdf"
)

// MinTextLength is the minimum amount of extracted text below which a PDF is
// treated as scanned/image-based rather than text-based.
const MinTextLength = 100

// ExtractionError indicates that PDF text extraction failed or produced
// implausibly little text. It is user-facing and never retried.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "statement extraction failed: " + e.Reason
}

// ExtractText converts a PDF byte buffer into newline-joined row text.
// Rows are reconstructed per page in reading order.
func ExtractText(buf []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", &ExtractionError{Reason: fmt.Sprintf("could not read PDF: %v", err)}
	}

	numPages := r.NumPage()
	rows := make([]string, 0, numPages*100)

	for no := 1; no <= numPages; no++ {
		page := r.Page(no)
		pageRows, err := page.GetTextByRow()
		if err != nil {
			log.Printf("Warning: error getting text from page %d: %v", no, err)
			continue
		}

		for _, row := range pageRows {
			var builder strings.Builder
			builder.Grow(len(row.Content) * 20)
			for i, text := range row.Content {
				builder.WriteString(text.S)
				if i < len(row.Content)-1 {
					builder.WriteByte(' ')
				}
			}
			if builder.Len() > 0 {
				rows = append(rows, builder.String())
			}
		}
	}

	text := strings.Join(rows, "\n")
	if len(text) < MinTextLength {
		return "", &ExtractionError{
			Reason: fmt.Sprintf("extracted only %d characters of text; this looks like a scanned or image-based PDF. Re-download a text-based statement from your bank", len(text)),
		}
	}

	return text, nil
}
