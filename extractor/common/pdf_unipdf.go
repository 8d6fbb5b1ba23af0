package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/unidoc/unipdf/v3/common/license"
	uniextractor "github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// UnipdfExtractor reads PDFs with unipdf. The library needs a metered license key.
type UnipdfExtractor struct {
	log logrus.FieldLogger
}

func NewUnipdfExtractor(licenseKey string, logger logrus.FieldLogger) (*UnipdfExtractor, error) {
	if licenseKey == "" {
		return nil, ErrLicenseRequired
	}
	if err := license.SetMeteredKey(licenseKey); err != nil {
		return nil, &ConfigError{Key: "extractor.unipdf_license_key", Value: "<redacted>", Err: err}
	}
	return &UnipdfExtractor{log: logger.WithField("backend", BackendUnipdf)}, nil
}

func (e *UnipdfExtractor) ExtractText(reader io.Reader) (string, error) {
	rs, err := readSeekerFrom(reader)
	if err != nil {
		return "", &ExtractionError{Backend: BackendUnipdf, Err: err}
	}

	pdfReader, err := model.NewPdfReader(rs)
	if err != nil {
		return "", &ExtractionError{Backend: BackendUnipdf, Err: err}
	}

	encrypted, err := pdfReader.IsEncrypted()
	if err != nil {
		return "", &ExtractionError{Backend: BackendUnipdf, Err: err}
	}
	if encrypted {
		ok, err := pdfReader.Decrypt([]byte(""))
		if err != nil {
			return "", &ExtractionError{Backend: BackendUnipdf, Err: err}
		}
		if !ok {
			return "", &ExtractionError{Backend: BackendUnipdf, Err: fmt.Errorf("document is password protected")}
		}
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", &ExtractionError{Backend: BackendUnipdf, Err: err}
	}

	pages := make([]string, 0, numPages)
	for no := 1; no <= numPages; no++ {
		pages = append(pages, e.pageText(pdfReader, no))
	}

	return JoinPages(pages), nil
}

func (e *UnipdfExtractor) pageText(pdfReader *model.PdfReader, no int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.WithField("page", no).Warnf("pdf library crashed on page: %v", rec)
			text = ""
		}
	}()

	page, err := pdfReader.GetPage(no)
	if err != nil {
		e.log.WithField("page", no).WithError(err).Warn("could not load page")
		return ""
	}

	ex, err := uniextractor.New(page)
	if err != nil {
		e.log.WithField("page", no).WithError(err).Warn("could not create page extractor")
		return ""
	}

	text, err = ex.ExtractText()
	if err != nil {
		e.log.WithField("page", no).WithError(err).Warn("could not get text from page")
		return ""
	}

	return strings.TrimRight(text, "\n")
}
