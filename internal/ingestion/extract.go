// Package ingestion turns uploaded resume documents into clean text for
// the screening pipeline.
package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MinTextLength is the minimum extracted text length accepted as a usable
// resume; anything shorter is treated as a failed extraction (scanned
// image, certificate-only PDF, corrupt file).
const MinTextLength = 50

// ExtractResumeText decodes an uploaded resume by extension. PDF content
// is extracted; plain text passes through. The result is whitespace-
// normalized and length-checked.
func ExtractResumeText(filename string, content []byte) (string, error) {
	var text string

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		extracted, err := extractPDF(content)
		if err != nil {
			return "", err
		}
		text = extracted
	case strings.HasSuffix(strings.ToLower(filename), ".txt"):
		text = string(content)
	default:
		return "", fmt.Errorf("unsupported file type: %s (use .pdf or .txt)", filename)
	}

	text = CleanText(text)
	if len(text) < MinTextLength {
		return "", fmt.Errorf("extracted text is too short (%d chars), file may be corrupt or empty", len(text))
	}

	return text, nil
}

func extractPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}

// CleanText collapses all runs of whitespace to single spaces and trims
// the ends, matching how resumes are stored in the sheet.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
