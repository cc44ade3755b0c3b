// Package extractor recovers the text layer from Rajhi statement PDFs.
// Statements carry a bilingual Arabic/English text layer; the readability
// gate therefore counts Arabic presentation-form characters as readable and
// looks for statement vocabulary before trusting an extraction method.
package extractor

import (
	"fmt"
	"os/exec"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads a PDF and returns the text content of each page. The
// structured library is tried first; if it fails or produces garbage the
// external pdftotext command is used as a fallback.
func ExtractText(path string) ([]string, error) {
	pages, libErr := extractWithLibrary(path)
	if libErr == nil && isStatementText(pages) {
		return pages, nil
	}

	pages, popplerErr := extractWithPdftotext(path)
	if popplerErr == nil && isStatementText(pages) {
		return pages, nil
	}

	if libErr != nil {
		return nil, fmt.Errorf("pdf text extraction failed: %w", libErr)
	}
	return nil, fmt.Errorf("no readable statement text in pdf (library: garbage output, pdftotext: %v)", popplerErr)
}

// ExtractCombined returns the whole document as one blob, pages joined with
// newlines, matching what the statement pipeline consumes.
func ExtractCombined(path string) (string, error) {
	pages, err := ExtractText(path)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

// extractWithLibrary walks the document with ledongthuc/pdf, trying the
// row-based reader first and falling back to per-page plain text. The
// library panics on some malformed cross-reference tables, so the whole
// walk runs under a recover.
func extractWithLibrary(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	pages = extractByRow(r, numPages)
	if isStatementText(pages) {
		return pages, nil
	}

	return extractByPlainText(r, numPages), nil
}

func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

// extractWithPdftotext shells out to poppler's pdftotext with layout
// preservation, which copes with the font encodings some statement
// generations use.
func extractWithPdftotext(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, fmt.Errorf("pdftotext not available: %w", err)
	}
	out, err := exec.Command("pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed: %w", err)
	}
	text := strings.TrimSpace(string(out))
	if text == "" {
		return nil, fmt.Errorf("pdftotext produced no output")
	}
	// pdftotext separates pages with form feeds.
	var pages []string
	for _, page := range strings.Split(text, "\f") {
		page = strings.TrimSpace(page)
		if page != "" {
			pages = append(pages, page)
		}
	}
	return pages, nil
}

// statementWords is vocabulary present on every Rajhi statement generation.
// Extracted text containing none of these is treated as garbage.
var statementWords = []string{
	"statement", "card", "amount", "date", "page", "credit", "payment",
}

// isStatementText checks that extraction produced enough text, that most of
// it is readable, and that it contains recognizable statement vocabulary.
func isStatementText(pages []string) bool {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p))
	}
	if total <= 40 {
		return false
	}
	if textQuality(pages) <= 0.5 {
		return false
	}
	combined := strings.ToLower(strings.Join(pages, " "))
	for _, word := range statementWords {
		if strings.Contains(combined, word) {
			return true
		}
	}
	return false
}

// textQuality returns the fraction of characters that are plausible
// statement text: ASCII letters, digits, whitespace, common punctuation,
// or Arabic script (base block plus the presentation forms the statement
// PDFs actually embed).
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isReadableRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	case r >= 0xFB50 && r <= 0xFDFF: // Arabic presentation forms A
		return true
	case r >= 0xFE70 && r <= 0xFEFF: // Arabic presentation forms B
		return true
	}
	return strings.ContainsRune(`.,-/:;()'"%&@#!?+=*`, r)
}
