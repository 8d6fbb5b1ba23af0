package common

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewTextExtractor_Backends(t *testing.T) {
	tests := []struct {
		backend string
		check   func(t *testing.T, ex TextExtractor)
	}{
		{"", func(t *testing.T, ex TextExtractor) { assert.IsType(t, &DslipakExtractor{}, ex) }},
		{"dslipak", func(t *testing.T, ex TextExtractor) { assert.IsType(t, &DslipakExtractor{}, ex) }},
		{"DSLIPAK", func(t *testing.T, ex TextExtractor) { assert.IsType(t, &DslipakExtractor{}, ex) }},
		{"ledongthuc", func(t *testing.T, ex TextExtractor) { assert.IsType(t, &LedongthucExtractor{}, ex) }},
		{"auto", func(t *testing.T, ex TextExtractor) { assert.IsType(t, &fallbackExtractor{}, ex) }},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			ex, err := NewTextExtractor(ExtractorConfig{Backend: tt.backend, Logger: quietLogger()})
			require.NoError(t, err)
			tt.check(t, ex)
		})
	}
}

func TestNewTextExtractor_Unknown(t *testing.T) {
	_, err := NewTextExtractor(ExtractorConfig{Backend: "pdfplumber"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedBackend))

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "extractor.backend", cfgErr.Key)
}

func TestNewTextExtractor_UnipdfNeedsLicense(t *testing.T) {
	_, err := NewTextExtractor(ExtractorConfig{Backend: BackendUnipdf})
	assert.True(t, errors.Is(err, ErrLicenseRequired))
}

func TestExtractText_InvalidPDF(t *testing.T) {
	for _, backend := range []string{BackendDslipak, BackendLedongthuc} {
		t.Run(backend, func(t *testing.T) {
			ex, err := NewTextExtractor(ExtractorConfig{Backend: backend, Logger: quietLogger()})
			require.NoError(t, err)

			_, err = ex.ExtractText(strings.NewReader("not a valid pdf"))
			require.Error(t, err)

			var extErr *ExtractionError
			require.True(t, errors.As(err, &extErr))
			assert.Equal(t, backend, extErr.Backend)
		})
	}
}

func TestExtractText_AutoReportsEveryBackend(t *testing.T) {
	ex, err := NewTextExtractor(ExtractorConfig{Backend: BackendAuto, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = ex.ExtractText(bytes.NewBufferString("%PDF-broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), BackendDslipak)
	assert.Contains(t, err.Error(), BackendLedongthuc)
}

type stubExtractor struct {
	text string
	err  error
	seen []byte
}

func (s *stubExtractor) ExtractText(r io.Reader) (string, error) {
	s.seen, _ = io.ReadAll(r)
	return s.text, s.err
}

func TestFallbackExtractor_UsesFirstSuccess(t *testing.T) {
	failing := &stubExtractor{err: &ExtractionError{Backend: "first", Err: errors.New("boom")}}
	working := &stubExtractor{text: "page one"}
	unused := &stubExtractor{text: "never"}

	ex := &fallbackExtractor{backends: []TextExtractor{failing, working, unused}, log: quietLogger()}
	text, err := ex.ExtractText(strings.NewReader("payload"))

	require.NoError(t, err)
	assert.Equal(t, "page one", text)
	assert.Equal(t, "payload", string(failing.seen))
	assert.Equal(t, "payload", string(working.seen))
	assert.Nil(t, unused.seen)
}

func TestJoinPages(t *testing.T) {
	assert.Equal(t, "a\nb\n\nc", JoinPages([]string{"a\nb", "", "c"}))
	assert.Equal(t, "", JoinPages(nil))
}

func TestReaderAtFrom(t *testing.T) {
	t.Run("seekable reader is used in place", func(t *testing.T) {
		r := bytes.NewReader([]byte("0123456789"))
		_, err := r.Seek(4, io.SeekStart)
		require.NoError(t, err)

		rAt, size, err := readerAtFrom(r)
		require.NoError(t, err)
		assert.Equal(t, int64(10), size)
		assert.Same(t, r, rAt)

		pos, _ := r.Seek(0, io.SeekCurrent)
		assert.Equal(t, int64(4), pos)
	})

	t.Run("plain reader is buffered", func(t *testing.T) {
		rAt, size, err := readerAtFrom(io.LimitReader(strings.NewReader("abc"), 10))
		require.NoError(t, err)
		assert.Equal(t, int64(3), size)

		buf := make([]byte, 3)
		_, err = rAt.ReadAt(buf, 0)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(buf))
	})
}
