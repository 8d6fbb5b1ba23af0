package common

import (
	"fmt"
	"io"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"
)

// LedongthucExtractor reads PDFs with github.com/ledongthuc/pdf. It copes with
// some font encodings the default backend cannot open.
type LedongthucExtractor struct {
	log logrus.FieldLogger
}

func NewLedongthucExtractor(logger logrus.FieldLogger) *LedongthucExtractor {
	return &LedongthucExtractor{log: logger.WithField("backend", BackendLedongthuc)}
}

func (e *LedongthucExtractor) ExtractText(reader io.Reader) (string, error) {
	rAt, size, err := readerAtFrom(reader)
	if err != nil {
		return "", &ExtractionError{Backend: BackendLedongthuc, Err: err}
	}

	r, err := openLedongthuc(rAt, size)
	if err != nil {
		return "", &ExtractionError{Backend: BackendLedongthuc, Err: err}
	}

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for no := 1; no <= numPages; no++ {
		pages = append(pages, e.pageText(r, no))
	}

	return JoinPages(pages), nil
}

func openLedongthuc(rAt io.ReaderAt, size int64) (r *lpdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf library crashed: %v", rec)
		}
	}()
	return lpdf.NewReader(rAt, size)
}

func (e *LedongthucExtractor) pageText(r *lpdf.Reader, no int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.WithField("page", no).Warnf("pdf library crashed on page: %v", rec)
			text = ""
		}
	}()

	page := r.Page(no)
	if page.V.IsNull() {
		return ""
	}

	content := page.Content()
	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
	}

	return strings.Join(layoutRows(glyphs), "\n")
}
