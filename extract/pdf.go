package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDF opens a PDF file and returns its cleaned plain text.
// Page texts are concatenated in page order; pages without a text layer
// contribute nothing.
func ExtractPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPDFOpenFailed, err)
	}
	defer doc.Close()

	return pdfText(doc)
}

// ExtractPDFBytes extracts cleaned plain text from an in-memory PDF.
func ExtractPDFBytes(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPDFOpenFailed, err)
	}
	defer doc.Close()

	return pdfText(doc)
}

func pdfText(doc *fitz.Document) (string, error) {
	var pages []string
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrPDFReadFailed, n+1, err)
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return CleanText(strings.Join(pages, "\n")), nil
}
