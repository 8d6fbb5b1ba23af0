package common

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/sirupsen/logrus"
)

// Supported values for extractor.backend.
const (
	BackendAuto       = "auto"
	BackendDslipak    = "dslipak"
	BackendLedongthuc = "ledongthuc"
	BackendUnipdf     = "unipdf"
)

// TextExtractor turns a PDF document into newline separated text, pages in
// document order. Unreadable pages become empty strings; only a document that
// cannot be opened at all is an error.
type TextExtractor interface {
	ExtractText(r io.Reader) (string, error)
}

// ExtractorConfig selects and configures a TextExtractor backend.
type ExtractorConfig struct {
	Backend          string
	UnipdfLicenseKey string
	Logger           logrus.FieldLogger
}

// NewTextExtractor returns the backend named by cfg.Backend (dslipak when empty).
func NewTextExtractor(cfg ExtractorConfig) (TextExtractor, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendDslipak:
		return NewDslipakExtractor(logger), nil
	case BackendLedongthuc:
		return NewLedongthucExtractor(logger), nil
	case BackendAuto:
		return &fallbackExtractor{
			backends: []TextExtractor{NewDslipakExtractor(logger), NewLedongthucExtractor(logger)},
			log:      logger,
		}, nil
	case BackendUnipdf:
		return NewUnipdfExtractor(cfg.UnipdfLicenseKey, logger)
	default:
		return nil, &ConfigError{Key: "extractor.backend", Value: cfg.Backend, Err: ErrUnsupportedBackend}
	}
}

// ExtractTextFromFile opens path and runs it through the extractor.
func ExtractTextFromFile(extractor TextExtractor, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return extractor.ExtractText(file)
}

// JoinPages concatenates page texts with a newline between pages.
func JoinPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// DslipakExtractor reads PDFs with github.com/dslipak/pdf.
type DslipakExtractor struct {
	log logrus.FieldLogger
}

func NewDslipakExtractor(logger logrus.FieldLogger) *DslipakExtractor {
	return &DslipakExtractor{log: logger.WithField("backend", BackendDslipak)}
}

func (e *DslipakExtractor) ExtractText(reader io.Reader) (string, error) {
	pages, err := e.ExtractPages(reader)
	if err != nil {
		return "", err
	}
	return JoinPages(pages), nil
}

// ExtractPages returns the text of every page, one entry per page.
func (e *DslipakExtractor) ExtractPages(reader io.Reader) ([]string, error) {
	rAt, size, err := readerAtFrom(reader)
	if err != nil {
		return nil, &ExtractionError{Backend: BackendDslipak, Err: err}
	}

	r, err := openDslipak(rAt, size)
	if err != nil {
		return nil, &ExtractionError{Backend: BackendDslipak, Err: err}
	}

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for no := 1; no <= numPages; no++ {
		pages = append(pages, e.pageText(r, no))
	}

	return pages, nil
}

func openDslipak(rAt io.ReaderAt, size int64) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf library crashed: %v", rec)
		}
	}()
	return pdf.NewReader(rAt, size)
}

func (e *DslipakExtractor) pageText(r *pdf.Reader, no int) (text string) {
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

// fallbackExtractor tries each backend in order until one can open the document.
type fallbackExtractor struct {
	backends []TextExtractor
	log      logrus.FieldLogger
}

func (e *fallbackExtractor) ExtractText(reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", &ExtractionError{Backend: BackendAuto, Err: err}
	}

	var errs []error
	for _, backend := range e.backends {
		text, err := backend.ExtractText(bytes.NewReader(data))
		if err == nil {
			return text, nil
		}
		e.log.WithError(err).Debug("backend could not open document, trying next")
		errs = append(errs, err)
	}

	return "", errors.Join(errs...)
}

// readerAtFrom returns an io.ReaderAt and its size, buffering the reader in
// memory when it cannot be used in place.
func readerAtFrom(reader io.Reader) (io.ReaderAt, int64, error) {
	if rAt, ok := reader.(io.ReaderAt); ok {
		if seeker, ok := reader.(io.Seeker); ok {
			cur, err := seeker.Seek(0, io.SeekCurrent)
			if err != nil {
				return nil, 0, err
			}
			end, err := seeker.Seek(0, io.SeekEnd)
			if err != nil {
				return nil, 0, err
			}
			if _, err := seeker.Seek(cur, io.SeekStart); err != nil {
				return nil, 0, err
			}
			return rAt, end, nil
		}
	}

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(reader); err != nil {
		return nil, 0, err
	}
	b := buf.Bytes()
	return bytes.NewReader(b), int64(len(b)), nil
}

// readSeekerFrom is readerAtFrom for libraries that want an io.ReadSeeker.
func readSeekerFrom(reader io.Reader) (io.ReadSeeker, error) {
	if rs, ok := reader.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}
