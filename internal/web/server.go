// Package web serves a compiled document over HTTP for local preview:
// the raw document as JSON and YAML, plus a minimal HTML index.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/asyncdoc/asyncdoc/asyncapi"
)

// Server serves one compiled document.
type Server struct {
	doc    *asyncapi.Document
	logger *zap.Logger
}

// NewServer creates a preview server for the given document. A nil logger
// is replaced with a no-op logger.
func NewServer(doc *asyncapi.Document, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{doc: doc, logger: logger}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/asyncapi.json", s.handleJSON)
	r.Get("/asyncapi.yaml", s.handleYAML)

	return r
}

// ListenAndServe blocks serving the document at the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("serving document",
		zap.String("addr", addr),
		zap.String("title", s.doc.Info.Title),
		zap.String("version", s.doc.Info.Version),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// shutdownTimeout bounds how long in-flight requests may take once a
// shutdown signal arrives.
const shutdownTimeout = 10 * time.Second

// Run serves the document until SIGINT or SIGTERM, then drains in-flight
// requests before returning.
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("serving document",
			zap.String("addr", addr),
			zap.String("title", s.doc.Info.Title),
			zap.String("version", s.doc.Info.Version),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		s.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.logger.Info("shutdown complete")
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.doc.ToJSON()
	if err != nil {
		s.logger.Error("failed to serialize document", zap.Error(err))
		http.Error(w, "failed to serialize document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleYAML(w http.ResponseWriter, r *http.Request) {
	data, err := s.doc.ToYAML()
	if err != nil {
		s.logger.Error("failed to serialize document", zap.Error(err))
		http.Error(w, "failed to serialize document", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexTemplate, s.doc.Info.Title, s.doc.Info.Title, s.doc.Info.Version, s.doc.Info.Description)
}

const indexTemplate = `<!DOCTYPE html>
<html>
<head><title>%s - AsyncAPI</title></head>
<body>
<h1>%s</h1>
<p>Version %s</p>
<p>%s</p>
<ul>
<li><a href="/asyncapi.json">asyncapi.json</a></li>
<li><a href="/asyncapi.yaml">asyncapi.yaml</a></li>
</ul>
</body>
</html>
`
