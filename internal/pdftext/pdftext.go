// Package pdftext pulls a bounded window of leading text out of a PDF.
//
// Only the first few pages are read: title, authors and date of a paper sit
// on the first page, and keeping the window small keeps the prompt cheap.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/handiism/paper-renamer/internal/apperr"
	"github.com/ledongthuc/pdf"
	pdfcpu "github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

// Defaults for the extraction window.
const (
	DefaultMaxPages = 3
	DefaultMaxChars = 3000
)

// Document is the text handed to the model.
type Document struct {
	Text      string
	Pages     int
	InfoTitle string
}

// Extractor reads leading text from PDF files.
type Extractor struct {
	maxPages int
	maxChars int
	log      *zap.Logger
}

// NewExtractor creates an Extractor. Non-positive limits fall back to the
// defaults.
func NewExtractor(maxPages, maxChars int, log *zap.Logger) *Extractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{maxPages: maxPages, maxChars: maxChars, log: log}
}

// Extract returns the leading text of the PDF at path. A file that yields no
// text (scanned images, encrypted, not a PDF) is apperr.KindNoExtractableText.
func (e *Extractor) Extract(ctx context.Context, path string) (Document, error) {
	text, pages, err := e.readText(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Document{}, err
		}
		return Document{}, apperr.Wrap(apperr.KindNoExtractableText, "cannot read "+path, err).
			WithRemedy("the file may be damaged or encrypted; OCR is not supported")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Document{}, apperr.Newf(apperr.KindNoExtractableText, "%s has no text layer", path).
			WithRemedy("the PDF looks like a scanned image; OCR is not supported")
	}

	doc := Document{
		Text:      truncateRunes(text, e.maxChars),
		Pages:     pages,
		InfoTitle: e.infoTitle(path),
	}
	e.log.Debug("pdftext.extracted",
		zap.String("path", path),
		zap.Int("pages", pages),
		zap.Int("chars", utf8.RuneCountInString(doc.Text)),
		zap.String("info_title", doc.InfoTitle),
	)
	return doc, nil
}

// readText walks the first maxPages pages. The parser panics on some
// malformed inputs; those are turned into errors.
func (e *Extractor) readText(ctx context.Context, path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	var sb strings.Builder
	total := r.NumPage()
	for i := 1; i <= total && pages < e.maxPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages++
		s, err := p.GetPlainText(nil)
		if err != nil {
			e.log.Debug("pdftext.page_failed", zap.Int("page", i), zap.Error(err))
			continue
		}
		sb.WriteString(s)
		sb.WriteByte('\n')
		if utf8.RuneCountInString(sb.String()) >= e.maxChars {
			break
		}
	}
	return sb.String(), pages, nil
}

// infoTitle reads the Title entry of the document info dictionary. Missing
// or unreadable metadata yields "".
func (e *Extractor) infoTitle(path string) (title string) {
	defer func() {
		if r := recover(); r != nil {
			title = ""
		}
	}()

	info, err := pdfcpu.InfoFile(path, []string{}, nil)
	if err != nil {
		e.log.Debug("pdftext.info_failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return titleFromInfo(info)
}

func titleFromInfo(info []string) string {
	const prefix = "Title:"
	for _, line := range info {
		cleaned := strings.TrimSpace(line)
		if strings.HasPrefix(cleaned, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(cleaned, prefix))
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
