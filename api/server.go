// Package api serves the upload form that summarizes BoA deposit statements.
// It can be started from the CLI or mounted into another http.Server.
package api

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/aqlanhadi/depsum/extractor"
	"github.com/sirupsen/logrus"
)

//go:embed templates/index.html
var templateFS embed.FS

// Config holds the API server configuration
type Config struct {
	Port            string
	MaxUploadMemory int64
	Logger          logrus.FieldLogger
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:            ":5001",
		MaxUploadMemory: 32 << 20,
	}
}

// Server represents the HTTP server
type Server struct {
	config    Config
	mux       *http.ServeMux
	template  *template.Template
	processor *extractor.Processor
	log       logrus.FieldLogger
}

type pageData struct {
	Results []extractor.FileResult
}

// New creates a new server that runs uploads through processor
func New(cfg Config, processor *extractor.Processor) *Server {
	if cfg.MaxUploadMemory <= 0 {
		cfg.MaxUploadMemory = DefaultConfig().MaxUploadMemory
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		config:    cfg,
		mux:       http.NewServeMux(),
		template:  template.Must(template.ParseFS(templateFS, "templates/index.html")),
		processor: processor,
		log:       logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.withLogging(s.handleIndex))
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	s.log.WithField("addr", s.config.Port).Info("Starting server")
	return http.ListenAndServe(s.config.Port, s.mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.render(w, r, pageData{})
	case http.MethodPost:
		s.handleUpload(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		s.respondError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.config.MaxUploadMemory); err != nil {
		// A plain form post carries no files.
		if errors.Is(err, http.ErrNotMultipart) {
			s.render(w, r, pageData{})
			return
		}
		s.respondError(w, r, http.StatusBadRequest, "Could not parse multipart form", err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	results := []extractor.FileResult{}
	for _, header := range r.MultipartForm.File["pdfs"] {
		if !s.processor.Accepts(header.Filename) {
			s.log.WithField("file", header.Filename).Debug("Skipping non-PDF upload")
			continue
		}

		file, err := header.Open()
		if err != nil {
			results = append(results, extractor.FileResult{Filename: header.Filename, Err: err})
			continue
		}
		results = append(results, s.processor.ProcessReader(file, header.Filename))
		file.Close()
	}

	s.render(w, r, pageData{Results: results})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.template.Execute(w, data); err != nil {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("Failed to render page")
	}
}

// respondError logs the error and writes a plain text error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	entry := s.log.WithFields(logrus.Fields{
		"status": status,
		"method": r.Method,
		"path":   r.URL.Path,
	})
	if err != nil {
		entry = entry.WithError(err)
		message = message + ": " + err.Error()
	}
	entry.Warn("Request error")
	http.Error(w, message, status)
}

// withLogging wraps a handler to log each request and recover panics.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			if rec := recover(); rec != nil {
				s.log.WithField("panic", rec).Error("Recovered from panic in handler")
				s.respondError(w, r, http.StatusInternalServerError, "Internal server error", fmt.Errorf("panic: %v", rec))
			}
		}()

		next(w, r)

		s.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"remote":      r.RemoteAddr,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("Handled request")
	}
}
