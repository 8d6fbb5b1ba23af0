package extractor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aqlanhadi/depsum/extractor/bofa_deposit"
	"github.com/aqlanhadi/depsum/extractor/common"
	"github.com/sirupsen/logrus"
)

// FileResult is the outcome of processing one document.
type FileResult struct {
	Filename string         `json:"filename"`
	Summary  common.Summary `json:"summary"`
	Err      error          `json:"-"`
}

// Overall returns the summary line, or the error text when processing failed.
func (r FileResult) Overall() string {
	if r.Err != nil {
		return "error: " + r.Err.Error()
	}
	return FormatOverall(r.Summary)
}

// FormatOverall renders the totals of s as a single line.
func FormatOverall(s common.Summary) string {
	return s.Overall()
}

// Processor runs extraction and scanning for one document at a time. It holds
// no per-document state and is safe for concurrent use.
type Processor struct {
	extractor common.TextExtractor
	scanner   *bofa_deposit.Scanner
	log       logrus.FieldLogger
}

func NewProcessor(ext common.TextExtractor, sc *bofa_deposit.Scanner, logger logrus.FieldLogger) *Processor {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if sc == nil {
		sc = bofa_deposit.NewScanner(bofa_deposit.DefaultConfig())
	}
	return &Processor{extractor: ext, scanner: sc, log: logger}
}

// Accepts reports whether filename looks like a statement PDF.
func (p *Processor) Accepts(filename string) bool {
	return p.scanner.Match(filename)
}

// ProcessReader extracts and scans a single document. Failures, including
// panics in a PDF backend, are returned in FileResult.Err.
func (p *Processor) ProcessReader(r io.Reader, filename string) (result FileResult) {
	result.Filename = filename
	logger := p.log.WithField("file", filename)
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			result.Err = fmt.Errorf("processing %s panicked: %v", filename, rec)
			logger.WithField("panic", rec).Error("Recovered from panic while processing file")
		}
	}()

	logger.Debug("Processing file")

	text, err := p.extractor.ExtractText(r)
	if err != nil {
		var extErr *common.ExtractionError
		if errors.As(err, &extErr) && extErr.Filename == "" {
			extErr.Filename = filename
		}
		result.Err = err
		logger.WithError(err).Warn("Failed to extract text")
		return result
	}

	summary := p.scanner.Scan(text)
	summary.Source = strings.TrimSuffix(filename, filepath.Ext(filename))
	result.Summary = summary

	logger.WithFields(logrus.Fields{
		"lines":       len(bofa_deposit.SplitLines(text)),
		"deposits":    len(summary.Deposits),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Processed file")

	return result
}

// ProcessFile opens path and processes it.
func (p *Processor) ProcessFile(path string) FileResult {
	name := filepath.Base(path)

	file, err := os.Open(path)
	if err != nil {
		p.log.WithField("file", name).WithError(err).Warn("Failed to open file")
		return FileResult{Filename: name, Err: err}
	}
	defer file.Close()

	return p.ProcessReader(file, name)
}

// ProcessPath processes a single file, or every accepted file directly inside
// a directory in directory order. A single named file is processed regardless
// of its extension. One failing file does not stop the others.
func (p *Processor) ProcessPath(path string) ([]FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		p.log.WithField("path", path).Info("Scanning file")
		return []FileResult{p.ProcessFile(path)}, nil
	}

	p.log.WithField("path", path).Info("Scanning directory")

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	results := []FileResult{}
	for _, e := range entries {
		if e.IsDir() || !p.Accepts(e.Name()) {
			continue
		}
		results = append(results, p.ProcessFile(filepath.Join(path, e.Name())))
	}

	return results, nil
}
