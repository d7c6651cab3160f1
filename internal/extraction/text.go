package extraction

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
)

var (
	inlineSpace  = regexp.MustCompile(`[ \t\f\v]+`)
	excessBlanks = regexp.MustCompile(`\n\n\n+`)
)

// blockSelectors are HTML elements that end a line of text
const blockSelectors = "p, div, li, tr, section, article, header, footer, h1, h2, h3, h4, h5, h6"

// ExtractText returns the cleaned plain text of a document
func ExtractText(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	kind, ok := DetectKind(filename, contentType)
	if !ok {
		return "", &InputValidationError{Field: "file", Message: fmt.Sprintf("unsupported file type %q", filename)}
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindPDF:
		text, err = pdfText(ctx, data)
	case KindHTML:
		text, err = htmlText(data)
	default:
		text, err = plainText(data)
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// pdfText concatenates the plain text of every page. Pages that fail to decode are skipped.
func pdfText(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		// the pdf reader panics on some malformed cross-reference tables
		if r := recover(); r != nil {
			text, err = "", &ExtractionError{Message: "invalid PDF file, it may be corrupted or password-protected", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "invalid PDF file, it may be corrupted or password-protected", Cause: err}
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", &ExtractionError{Message: "PDF has no pages"}
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// htmlText returns the visible body text of an HTML resume, one line per block element
func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find(blockSelectors).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return doc.Text(), nil
	}
	return body.Text(), nil
}

func plainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", &ExtractionError{Message: "text file is not valid UTF-8"}
	}
	return string(data), nil
}

// CleanText normalizes line endings, collapses runs of spaces inside each line,
// keeps at most one blank line between paragraphs and trims the result.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
	}

	result := excessBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}
